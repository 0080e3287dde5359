package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func seedDescriptors(repo *fakeDescriptorRepo, userID string, n int) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		repo.descriptors = append(repo.descriptors, Descriptor{
			ID:        primitive.NewObjectID(),
			Type:      "diesel",
			UserID:    userID,
			CreatedAt: base.AddDate(0, 0, i),
		})
	}
}

func TestRetentionEnforce(t *testing.T) {
	tests := []struct {
		name      string
		existing  int
		cap       int
		wantCount int
	}{
		{name: "Below Cap Untouched", existing: 5, cap: 10, wantCount: 5},
		{name: "At Cap Makes Room For One", existing: 10, cap: 10, wantCount: 9},
		{name: "Over Cap Prunes Down", existing: 14, cap: 10, wantCount: 9},
		{name: "Zero Cap Falls Back To Ten", existing: 10, cap: 0, wantCount: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeDescriptorRepo{}
			seedDescriptors(repo, "u1", tt.existing)

			manager := NewRetentionManager(repo, tt.cap, zap.NewNop())
			manager.Enforce(context.Background(), "u1")

			count, _ := repo.CountFor(context.Background(), "u1")
			if int(count) != tt.wantCount {
				t.Errorf("remaining descriptors = %d, want %d", count, tt.wantCount)
			}
		})
	}
}

func TestRetentionDeletesOldestFirst(t *testing.T) {
	repo := &fakeDescriptorRepo{}
	seedDescriptors(repo, "u1", 10)
	newest := repo.descriptors[9].ID
	oldest := repo.descriptors[0].ID

	manager := NewRetentionManager(repo, 10, zap.NewNop())
	manager.Enforce(context.Background(), "u1")

	if d, _ := repo.FindByID(context.Background(), oldest.Hex()); d != nil {
		t.Error("oldest descriptor should have been pruned")
	}
	if d, _ := repo.FindByID(context.Background(), newest.Hex()); d == nil {
		t.Error("newest descriptor must survive pruning")
	}
}

func TestRetentionScopedPerUser(t *testing.T) {
	repo := &fakeDescriptorRepo{}
	seedDescriptors(repo, "u1", 10)
	seedDescriptors(repo, "u2", 3)

	manager := NewRetentionManager(repo, 10, zap.NewNop())
	manager.Enforce(context.Background(), "u1")

	if count, _ := repo.CountFor(context.Background(), "u2"); count != 3 {
		t.Errorf("other users must be untouched, got %d", count)
	}
}

func TestRetentionBestEffort(t *testing.T) {
	repo := &fakeDescriptorRepo{countErr: errors.New("db down")}
	seedDescriptors(repo, "u1", 10)

	manager := NewRetentionManager(repo, 10, zap.NewNop())
	// Must not panic and must not delete anything it could not count.
	manager.Enforce(context.Background(), "u1")

	if len(repo.descriptors) != 10 {
		t.Errorf("descriptors = %d, want 10", len(repo.descriptors))
	}
}
