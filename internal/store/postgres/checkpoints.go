package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Radiant-Core/rxindexer/internal/model"
)

// CreateCheckpoint records an advisory (height, hash) snapshot. Recording
// the same height again overwrites it, which only happens after a rollback
// re-synced past an old checkpoint height.
func (s *Store) CreateCheckpoint(ctx context.Context, cp model.Checkpoint) (err error) {
	started := time.Now()
	defer func() {
		s.observe("create_checkpoint", err, started)
	}()

	meta := cp.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	_, err = s.pool.Exec(ctx, `
INSERT INTO checkpoints (height, hash, meta)
VALUES ($1, $2, $3)
ON CONFLICT (height) DO UPDATE
SET hash = EXCLUDED.hash, meta = EXCLUDED.meta, created_at = now()`,
		cp.Height, cp.Hash, meta)
	if err != nil {
		return fmt.Errorf("create checkpoint %d: %w", cp.Height, err)
	}
	return nil
}

// LatestCheckpoint returns the highest recorded checkpoint, or ErrNotFound
// when none exist yet.
func (s *Store) LatestCheckpoint(ctx context.Context) (cp model.Checkpoint, err error) {
	started := time.Now()
	defer func() {
		s.observe("latest_checkpoint", err, started)
	}()

	err = s.pool.QueryRow(ctx, `
SELECT height, hash, created_at, meta
FROM checkpoints
ORDER BY height DESC
LIMIT 1`).Scan(&cp.Height, &cp.Hash, &cp.CreatedAt, &cp.Meta)
	if errors.Is(err, pgx.ErrNoRows) {
		return cp, ErrNotFound
	}
	if err != nil {
		return cp, fmt.Errorf("latest checkpoint: %w", err)
	}
	return cp, nil
}

// CheckpointAtOrBelow returns the highest checkpoint not above the given
// height. Reorg handling uses it as a floor for the walk-back search.
func (s *Store) CheckpointAtOrBelow(ctx context.Context, height uint64) (cp model.Checkpoint, err error) {
	started := time.Now()
	defer func() {
		s.observe("checkpoint_at_or_below", err, started)
	}()

	err = s.pool.QueryRow(ctx, `
SELECT height, hash, created_at, meta
FROM checkpoints
WHERE height <= $1
ORDER BY height DESC
LIMIT 1`, height).Scan(&cp.Height, &cp.Hash, &cp.CreatedAt, &cp.Meta)
	if errors.Is(err, pgx.ErrNoRows) {
		return cp, ErrNotFound
	}
	if err != nil {
		return cp, fmt.Errorf("checkpoint at or below %d: %w", height, err)
	}
	return cp, nil
}

// PruneCheckpoints drops old checkpoints, always retaining the newest keep
// rows and additionally any row at least minInterval blocks below the next
// retained one, so history stays sparse but never empty.
func (s *Store) PruneCheckpoints(ctx context.Context, keep int, minInterval uint64) (pruned int64, err error) {
	started := time.Now()
	defer func() {
		s.observe("prune_checkpoints", err, started)
	}()

	if keep < 0 {
		keep = 0
	}
	tag, err := s.pool.Exec(ctx, `
DELETE FROM checkpoints c
WHERE c.height NOT IN (SELECT height FROM checkpoints ORDER BY height DESC LIMIT $1)
  AND EXISTS (
      SELECT 1 FROM checkpoints d
      WHERE d.height > c.height AND d.height - c.height < $2
  )`, keep, minInterval)
	if err != nil {
		return 0, fmt.Errorf("prune checkpoints: %w", err)
	}
	return tag.RowsAffected(), nil
}
