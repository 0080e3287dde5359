package report

import (
	"context"

	"go-fleet/pkg/filter"
)

// DocumentStore is the storage collaborator. Filters are abstract expression
// trees; the Mongo adapter lowers them. ListCollections exists only for the
// diagnostic fallback when a target collection comes back empty.
type DocumentStore interface {
	Find(ctx context.Context, collection string, f filter.Node) ([]map[string]any, error)
	FindOne(ctx context.Context, collection string, f filter.Node) (map[string]any, error)
	Count(ctx context.Context, collection string, f filter.Node) (int64, error)
	InsertOne(ctx context.Context, collection string, doc any) (string, error)
	DeleteByIDs(ctx context.Context, collection string, ids []string) (int64, error)
	ListCollections(ctx context.Context) ([]string, error)
}

// UserDirectory is the user-management collaborator. Empty organizationID
// means unrestricted; empty workplace means the whole organization.
type UserDirectory interface {
	FindMembers(ctx context.Context, organizationID, workplace string) ([]Member, error)
}
