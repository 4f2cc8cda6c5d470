package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Radiant-Core/rxindexer/internal/model"
)

// LoadSyncState returns the singleton sync-state row, creating the default
// row if the table is empty.
func (s *Store) LoadSyncState(ctx context.Context) (state model.SyncState, err error) {
	started := time.Now()
	defer func() {
		s.observe("load_sync_state", err, started)
	}()

	err = s.pool.QueryRow(ctx, `
SELECT current_height, current_hash, current_chainwork, is_syncing, last_error, last_updated_at
FROM sync_state
WHERE id = 1`).Scan(
		&state.CurrentHeight, &state.CurrentHash, &state.CurrentChainwork,
		&state.IsSyncing, &state.LastError, &state.LastUpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, err = s.pool.Exec(ctx, `INSERT INTO sync_state (id) VALUES (1) ON CONFLICT (id) DO NOTHING`); err != nil {
			return state, fmt.Errorf("seed sync state: %w", err)
		}
		return s.LoadSyncState(ctx)
	}
	if err != nil {
		return state, fmt.Errorf("load sync state: %w", err)
	}
	return state, nil
}

// SetSyncing flips the persisted single-flight flag. It reports whether the
// flag actually changed, so concurrent sync attempts can detect each other.
func (s *Store) SetSyncing(ctx context.Context, syncing bool) (changed bool, err error) {
	started := time.Now()
	defer func() {
		s.observe("set_syncing", err, started)
	}()

	tag, err := s.pool.Exec(ctx, `
UPDATE sync_state
SET is_syncing = $1, last_updated_at = now()
WHERE id = 1 AND is_syncing <> $1`, syncing)
	if err != nil {
		return false, fmt.Errorf("set syncing: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ClearSyncing unconditionally releases the single-flight flag. Meant for
// process startup, where any persisted claim belongs to a run that died
// without releasing it.
func (s *Store) ClearSyncing(ctx context.Context) (err error) {
	started := time.Now()
	defer func() {
		s.observe("clear_syncing", err, started)
	}()

	tag, err := s.pool.Exec(ctx, `
UPDATE sync_state
SET is_syncing = FALSE, last_updated_at = now()
WHERE id = 1 AND is_syncing`)
	if err != nil {
		return fmt.Errorf("clear syncing: %w", err)
	}
	if tag.RowsAffected() > 0 {
		s.logger.Warn("reclaimed stale syncing flag")
	}
	return nil
}

// RecordSyncError persists the last sync error message. An empty message
// clears it.
func (s *Store) RecordSyncError(ctx context.Context, message string) (err error) {
	started := time.Now()
	defer func() {
		s.observe("record_sync_error", err, started)
	}()

	_, err = s.pool.Exec(ctx, `
UPDATE sync_state
SET last_error = $1, last_updated_at = now()
WHERE id = 1`, message)
	if err != nil {
		return fmt.Errorf("record sync error: %w", err)
	}
	return nil
}
