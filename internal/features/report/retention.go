package report

import (
	"context"

	"go.uber.org/zap"
)

// RetentionManager keeps the stored descriptor count per user at or below the
// cap. It runs immediately before a new descriptor is inserted: with the cap
// at 10 it keeps the 9 most recent so the insert lands at exactly 10.
// Pruning is best-effort housekeeping; its failures never block generation.
type RetentionManager struct {
	repo DescriptorRepository
	cap  int64
	log  *zap.Logger
}

func NewRetentionManager(repo DescriptorRepository, cap int, log *zap.Logger) *RetentionManager {
	if cap <= 0 {
		cap = 10
	}
	return &RetentionManager{repo: repo, cap: int64(cap), log: log}
}

// Enforce deletes the oldest excess descriptors for userID.
func (m *RetentionManager) Enforce(ctx context.Context, userID string) {
	count, err := m.repo.CountFor(ctx, userID)
	if err != nil {
		m.log.Warn("retention count failed", zap.String("userId", userID), zap.Error(err))
		return
	}
	if count < m.cap {
		return
	}

	toDelete := count - (m.cap - 1)
	if toDelete < 1 {
		toDelete = 1
	}

	oldest, err := m.repo.FindOldest(ctx, userID, toDelete)
	if err != nil {
		m.log.Warn("retention lookup failed", zap.String("userId", userID), zap.Error(err))
		return
	}

	ids := make([]string, 0, len(oldest))
	for _, d := range oldest {
		ids = append(ids, d.ID.Hex())
	}

	deleted, err := m.repo.DeleteByIDs(ctx, ids)
	if err != nil {
		m.log.Warn("retention prune failed", zap.String("userId", userID), zap.Error(err))
		return
	}
	m.log.Info("pruned old report descriptors",
		zap.String("userId", userID),
		zap.Int64("deleted", deleted))
}
