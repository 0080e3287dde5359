package report

import (
	"context"
	"sort"
	"time"

	"go-fleet/pkg/filter"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory collaborators for exercising the report core without a database.

type storeCall struct {
	collection string
	filter     filter.Node
}

type fakeStore struct {
	docs     map[string][]map[string]any
	findFunc func(collection string, f filter.Node) ([]map[string]any, error)
	calls    []storeCall
}

func (s *fakeStore) Find(ctx context.Context, collection string, f filter.Node) ([]map[string]any, error) {
	s.calls = append(s.calls, storeCall{collection: collection, filter: f})
	if s.findFunc != nil {
		return s.findFunc(collection, f)
	}
	return s.docs[collection], nil
}

func (s *fakeStore) FindOne(ctx context.Context, collection string, f filter.Node) (map[string]any, error) {
	docs, err := s.Find(ctx, collection, f)
	if err != nil || len(docs) == 0 {
		return nil, err
	}
	return docs[0], nil
}

func (s *fakeStore) Count(ctx context.Context, collection string, f filter.Node) (int64, error) {
	docs, err := s.Find(ctx, collection, f)
	return int64(len(docs)), err
}

func (s *fakeStore) InsertOne(ctx context.Context, collection string, doc any) (string, error) {
	return primitive.NewObjectID().Hex(), nil
}

func (s *fakeStore) DeleteByIDs(ctx context.Context, collection string, ids []string) (int64, error) {
	return 0, nil
}

func (s *fakeStore) ListCollections(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

type fakeDirectory struct {
	members []Member
	err     error

	calls           int
	gotOrganization string
	gotWorkplace    string
}

func (d *fakeDirectory) FindMembers(ctx context.Context, organizationID, workplace string) ([]Member, error) {
	d.calls++
	d.gotOrganization = organizationID
	d.gotWorkplace = workplace
	if d.err != nil {
		return nil, d.err
	}
	var out []Member
	for _, m := range d.members {
		if workplace != "" && m.Workplace != workplace {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

type fakeDescriptorRepo struct {
	descriptors []Descriptor
	ops         []string
	countErr    error
}

func (r *fakeDescriptorRepo) Save(ctx context.Context, descriptor *Descriptor) (string, error) {
	r.ops = append(r.ops, "save")
	descriptor.ID = primitive.NewObjectID()
	if descriptor.CreatedAt.IsZero() {
		descriptor.CreatedAt = time.Now()
	}
	r.descriptors = append(r.descriptors, *descriptor)
	return descriptor.ID.Hex(), nil
}

func (r *fakeDescriptorRepo) ListFor(ctx context.Context, userID string) ([]Descriptor, error) {
	var out []Descriptor
	for _, d := range r.descriptors {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (r *fakeDescriptorRepo) FindByID(ctx context.Context, id string) (*Descriptor, error) {
	for _, d := range r.descriptors {
		if d.ID.Hex() == id {
			found := d
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeDescriptorRepo) CountFor(ctx context.Context, userID string) (int64, error) {
	r.ops = append(r.ops, "count")
	if r.countErr != nil {
		return 0, r.countErr
	}
	var n int64
	for _, d := range r.descriptors {
		if d.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeDescriptorRepo) FindOldest(ctx context.Context, userID string, limit int64) ([]Descriptor, error) {
	matching, _ := r.ListFor(ctx, userID)
	sort.Slice(matching, func(a, b int) bool { return matching[a].CreatedAt.Before(matching[b].CreatedAt) })
	if int64(len(matching)) > limit {
		matching = matching[:limit]
	}
	return matching, nil
}

func (r *fakeDescriptorRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	r.ops = append(r.ops, "delete")
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var kept []Descriptor
	var deleted int64
	for _, d := range r.descriptors {
		if wanted[d.ID.Hex()] {
			deleted++
			continue
		}
		kept = append(kept, d)
	}
	r.descriptors = kept
	return deleted, nil
}

func (r *fakeDescriptorRepo) DistinctUserIDs(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, d := range r.descriptors {
		if !seen[d.UserID] {
			seen[d.UserID] = true
			out = append(out, d.UserID)
		}
	}
	return out, nil
}
