package sync

import (
	"context"

	"go.uber.org/zap"

	"github.com/Radiant-Core/rxindexer/internal/model"
)

// checkpointManager snapshots committed progress at interval boundaries.
// Checkpoints are advisory; failure to record one never fails a commit.
type checkpointManager struct {
	store       Store
	logger      *zap.Logger
	interval    uint64
	keep        int
	minInterval uint64
}

func (m *checkpointManager) Record(ctx context.Context, res model.CommitResult) {
	if m.interval == 0 || res.Height%m.interval != 0 {
		return
	}

	cp := model.Checkpoint{
		Height: res.Height,
		Hash:   res.Hash,
		Meta:   map[string]any{"chainwork": res.Chainwork},
	}
	if err := m.store.CreateCheckpoint(ctx, cp); err != nil {
		m.logger.Error("checkpoint not recorded", zap.Uint64("height", res.Height), zap.Error(err))
		return
	}

	pruned, err := m.store.PruneCheckpoints(ctx, m.keep, m.minInterval)
	if err != nil {
		m.logger.Warn("checkpoint prune failed", zap.Error(err))
		return
	}
	if pruned > 0 {
		m.logger.Debug("pruned checkpoints", zap.Int64("count", pruned))
	}
}
