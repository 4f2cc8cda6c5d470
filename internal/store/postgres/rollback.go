package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// RollbackToHeight rewinds all derived state above the given height in one
// transaction: spends made by discarded transactions are undone, UTXOs and
// tokens created above the height are removed, surviving token pointers are
// rewound to their latest remaining unspent output and the sync state is
// reset to the block at the target height.
func (s *Store) RollbackToHeight(ctx context.Context, height uint64) (err error) {
	started := time.Now()
	defer func() {
		s.observe("rollback_to_height", err, started)
	}()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	state, err := lockSyncState(ctx, tx)
	if err != nil {
		return err
	}
	if height >= state.CurrentHeight {
		return nil
	}

	steps := []struct {
		name string
		sql  string
	}{
		{"unspend", `
UPDATE utxos
SET spent = FALSE, spent_by_txid = NULL
WHERE spent_by_txid IN (SELECT txid FROM transactions WHERE block_height > $1)`},
		{"delete utxos", `DELETE FROM utxos WHERE block_height > $1`},
		{"delete tokens", `DELETE FROM tokens WHERE genesis_height > $1`},
		{"delete transactions", `DELETE FROM transactions WHERE block_height > $1`},
		{"delete blocks", `DELETE FROM blocks WHERE height > $1`},
		{"delete checkpoints", `DELETE FROM checkpoints WHERE height > $1`},
	}
	for _, step := range steps {
		if _, err = tx.Exec(ctx, step.sql, height); err != nil {
			return fmt.Errorf("rollback %s: %w", step.name, err)
		}
	}

	// Surviving tokens whose current output no longer exists fall back to
	// their latest remaining unspent output.
	_, err = tx.Exec(ctx, `
UPDATE tokens t
SET current_txid = u.txid, current_output = u.output_index
FROM (
    SELECT DISTINCT ON (token_ref) token_ref, txid, output_index
    FROM utxos
    WHERE token_ref IS NOT NULL AND spent = FALSE
    ORDER BY token_ref, block_height DESC
) u
WHERE u.token_ref = t.ref
  AND NOT EXISTS (
      SELECT 1 FROM utxos cu
      WHERE cu.txid = t.current_txid AND cu.output_index = t.current_output AND cu.spent = FALSE
  )`)
	if err != nil {
		return fmt.Errorf("rollback rewind token pointers: %w", err)
	}

	var hash, chainwork string
	scanErr := tx.QueryRow(ctx, `SELECT hash, chainwork FROM blocks WHERE height = $1`, height).Scan(&hash, &chainwork)
	switch {
	case errors.Is(scanErr, pgx.ErrNoRows):
		// Rolled back past everything we ever stored.
		height, hash, chainwork = 0, "", "0"
	case scanErr != nil:
		return fmt.Errorf("rollback anchor block: %w", scanErr)
	}

	_, err = tx.Exec(ctx, `
UPDATE sync_state
SET current_height = $1, current_hash = $2, current_chainwork = $3, last_updated_at = now()
WHERE id = 1`,
		height, hash, chainwork)
	if err != nil {
		return fmt.Errorf("rollback sync state: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit rollback to %d: %w", height, err)
	}

	s.logger.Info("rolled back derived state",
		zap.Uint64("height", height),
		zap.Uint64("from_height", state.CurrentHeight))
	return nil
}
