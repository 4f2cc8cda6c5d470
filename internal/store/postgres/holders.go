package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// holderRecomputeLockID serializes recomputation passes across processes via
// a transaction-scoped advisory lock.
const holderRecomputeLockID = 0x7278686f6c646572 // "rxholder"

const recomputeAllHoldersSQL = `
WITH per_token AS (
    SELECT address, token_ref, SUM(amount)::bigint AS token_amount
    FROM utxos
    WHERE spent = FALSE AND token_ref IS NOT NULL
    GROUP BY address, token_ref
)
INSERT INTO holders (address, native_balance, token_balances)
SELECT n.address,
       n.native_balance,
       COALESCE((
           SELECT jsonb_object_agg(p.token_ref, p.token_amount)
           FROM per_token p
           WHERE p.address = n.address
       ), '{}'::jsonb)
FROM (
    SELECT address, SUM(amount)::bigint AS native_balance
    FROM utxos
    WHERE spent = FALSE
    GROUP BY address
) n`

const recomputeSomeHoldersSQL = `
WITH per_token AS (
    SELECT address, token_ref, SUM(amount)::bigint AS token_amount
    FROM utxos
    WHERE spent = FALSE AND token_ref IS NOT NULL AND address = ANY($1)
    GROUP BY address, token_ref
)
INSERT INTO holders (address, native_balance, token_balances)
SELECT n.address,
       n.native_balance,
       COALESCE((
           SELECT jsonb_object_agg(p.token_ref, p.token_amount)
           FROM per_token p
           WHERE p.address = n.address
       ), '{}'::jsonb)
FROM (
    SELECT address, SUM(amount)::bigint AS native_balance
    FROM utxos
    WHERE spent = FALSE AND address = ANY($1)
    GROUP BY address
) n`

// RecomputeHolders rebuilds holder aggregates from the unspent-UTXO set,
// globally when addresses is empty or for the given subset otherwise. An
// advisory lock guarantees at most one pass touches an address at a time;
// an address left with no unspent outputs simply loses its holder row.
func (s *Store) RecomputeHolders(ctx context.Context, addresses []string) (err error) {
	started := time.Now()
	defer func() {
		s.observe("recompute_holders", err, started)
	}()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(holderRecomputeLockID)); err != nil {
		return fmt.Errorf("holder recompute lock: %w", err)
	}

	if len(addresses) == 0 {
		if _, err = tx.Exec(ctx, `DELETE FROM holders`); err != nil {
			return fmt.Errorf("clear holders: %w", err)
		}
		if _, err = tx.Exec(ctx, recomputeAllHoldersSQL); err != nil {
			return fmt.Errorf("recompute holders: %w", err)
		}
	} else {
		if _, err = tx.Exec(ctx, `DELETE FROM holders WHERE address = ANY($1)`, addresses); err != nil {
			return fmt.Errorf("clear holders: %w", err)
		}
		if _, err = tx.Exec(ctx, recomputeSomeHoldersSQL, addresses); err != nil {
			return fmt.Errorf("recompute holders: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit holder recompute: %w", err)
	}

	s.logger.Debug("recomputed holder balances", zap.Int("addresses", len(addresses)))
	return nil
}
