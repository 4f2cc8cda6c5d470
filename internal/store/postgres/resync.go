package postgres

import (
	"context"
	"fmt"
	"time"
)

// Resync wipes all derived state so the next sync pass starts from scratch.
// The sync-state row is reset in the same transaction, so readers never see
// a truncated table alongside a stale height.
func (s *Store) Resync(ctx context.Context) (err error) {
	started := time.Now()
	defer func() {
		s.observe("resync", err, started)
	}()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err = tx.Exec(ctx, `TRUNCATE blocks, transactions, utxos, holders, tokens, checkpoints`); err != nil {
		return fmt.Errorf("truncate derived state: %w", err)
	}
	_, err = tx.Exec(ctx, `
UPDATE sync_state
SET current_height = 0, current_hash = '', current_chainwork = '0', last_error = '', last_updated_at = now()
WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("reset sync state: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit resync: %w", err)
	}

	s.logger.Warn("derived state wiped for full resync")
	return nil
}
