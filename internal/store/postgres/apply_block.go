package postgres

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/jackc/pgx/v5"

	"github.com/Radiant-Core/rxindexer/internal/model"
)

// ErrNonContiguous reports a block applied on top of the wrong height. The
// scheduler replays effects in strict ascending order; this guard turns an
// ordering bug into a hard per-block error instead of corrupt state.
var ErrNonContiguous = errors.New("non-contiguous block height")

// ApplyBlock commits one decoded block atomically: block and transaction
// rows, spent-UTXO flips, new UTXOs, token upserts and the sync-state
// advance all land in a single transaction or not at all. Re-applying an
// already committed block is a no-op for derived state.
func (s *Store) ApplyBlock(ctx context.Context, effect *model.BlockEffect) (res model.CommitResult, err error) {
	started := time.Now()
	defer func() {
		s.observe("apply_block", err, started)
	}()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return res, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	state, err := lockSyncState(ctx, tx)
	if err != nil {
		return res, err
	}

	fresh := state.CurrentHash == "" && state.CurrentHeight == 0
	advance := fresh || effect.Block.Height == state.CurrentHeight+1
	if !advance && effect.Block.Height > state.CurrentHeight {
		return res, fmt.Errorf("%w: block %d on top of %d", ErrNonContiguous, effect.Block.Height, state.CurrentHeight)
	}

	chainwork := state.CurrentChainwork
	if advance {
		chainwork, err = addChainwork(state.CurrentChainwork, effect.Block.Bits)
		if err != nil {
			return res, fmt.Errorf("chainwork for block %d: %w", effect.Block.Height, err)
		}
	}

	if err = insertBlock(ctx, tx, effect.Block, chainwork); err != nil {
		return res, err
	}
	if err = insertTransactions(ctx, tx, effect.Txs); err != nil {
		return res, err
	}
	created, dirty, err := insertUTXOs(ctx, tx, effect.NewUTXOs)
	if err != nil {
		return res, err
	}
	spent, spendDirty, err := applySpends(ctx, tx, effect.Spends)
	if err != nil {
		return res, err
	}
	dirty = append(dirty, spendDirty...)

	if err = upsertTokens(ctx, tx, effect.Tokens, effect.Block.Height); err != nil {
		return res, err
	}

	if advance {
		_, err = tx.Exec(ctx, `
UPDATE sync_state
SET current_height = $1, current_hash = $2, current_chainwork = $3, last_updated_at = now()
WHERE id = 1`,
			effect.Block.Height, effect.Block.Hash, chainwork)
		if err != nil {
			return res, fmt.Errorf("advance sync state: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return res, fmt.Errorf("commit block %d: %w", effect.Block.Height, err)
	}

	return model.CommitResult{
		Height:         effect.Block.Height,
		Hash:           effect.Block.Hash,
		Chainwork:      chainwork,
		CreatedUTXOs:   created,
		SpentUTXOs:     spent,
		TokenEffects:   len(effect.Tokens),
		DirtyAddresses: dedupe(dirty),
	}, nil
}

func lockSyncState(ctx context.Context, tx pgx.Tx) (model.SyncState, error) {
	var state model.SyncState
	err := tx.QueryRow(ctx, `
SELECT current_height, current_hash, current_chainwork
FROM sync_state
WHERE id = 1
FOR UPDATE`).Scan(&state.CurrentHeight, &state.CurrentHash, &state.CurrentChainwork)
	if err != nil {
		return state, fmt.Errorf("lock sync state: %w", err)
	}
	return state, nil
}

func insertBlock(ctx context.Context, tx pgx.Tx, block model.Block, chainwork string) error {
	_, err := tx.Exec(ctx, `
INSERT INTO blocks (hash, height, prev_hash, merkle_root, timestamp, bits, nonce, version, size, tx_count, chainwork)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (hash) DO NOTHING`,
		block.Hash, block.Height, block.PrevHash, block.MerkleRoot, block.Timestamp,
		block.Bits, block.Nonce, block.Version, block.Size, block.TxCount, chainwork)
	if err != nil {
		return fmt.Errorf("insert block %d: %w", block.Height, err)
	}
	return nil
}

func insertTransactions(ctx context.Context, tx pgx.Tx, txs []model.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, t := range txs {
		batch.Queue(`
INSERT INTO transactions (txid, block_height, block_hash, timestamp)
VALUES ($1, $2, $3, $4)
ON CONFLICT (txid) DO NOTHING`,
			t.TxID, t.BlockHeight, t.BlockHash, t.Timestamp)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}

func insertUTXOs(ctx context.Context, tx pgx.Tx, utxos []model.UTXO) (int, []string, error) {
	if len(utxos) == 0 {
		return 0, nil, nil
	}

	dirty := make([]string, 0, len(utxos))
	batch := &pgx.Batch{}
	for _, u := range utxos {
		dirty = append(dirty, u.Address)
		batch.Queue(`
INSERT INTO utxos (txid, output_index, address, amount, token_ref, spent, spent_by_txid, block_height, block_hash)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (txid, output_index) DO NOTHING`,
			u.TxID, u.Index, u.Address, u.Amount, nullable(u.TokenRef), u.Spent, nullable(u.SpentBy), u.BlockHeight, u.BlockHash)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, nil, fmt.Errorf("insert utxos: %w", err)
	}
	return len(utxos), dirty, nil
}

// applySpends flips existing UTXOs to spent in place. Outpoints we never
// tracked (data-only or non-standard outputs) simply match no row.
func applySpends(ctx context.Context, tx pgx.Tx, spends []model.SpendEffect) (int, []string, error) {
	if len(spends) == 0 {
		return 0, nil, nil
	}

	batch := &pgx.Batch{}
	for _, sp := range spends {
		batch.Queue(`
UPDATE utxos
SET spent = TRUE, spent_by_txid = $3
WHERE txid = $1 AND output_index = $2
RETURNING address`,
			sp.PrevTxID, sp.PrevIndex, sp.SpenderTxID)
	}

	br := tx.SendBatch(ctx, batch)
	spent := 0
	var dirty []string
	for range spends {
		var address string
		scanErr := br.QueryRow().Scan(&address)
		if errors.Is(scanErr, pgx.ErrNoRows) {
			continue
		}
		if scanErr != nil {
			_ = br.Close()
			return 0, nil, fmt.Errorf("apply spend: %w", scanErr)
		}
		spent++
		dirty = append(dirty, address)
	}
	if err := br.Close(); err != nil {
		return 0, nil, fmt.Errorf("apply spends: %w", err)
	}
	return spent, dirty, nil
}

// upsertTokens inserts unseen refs as genesis rows and moves the current
// pointer for known refs. Supply and collection ride along in metadata so
// new envelope types need no schema change.
func upsertTokens(ctx context.Context, tx pgx.Tx, tokens []model.TokenEffect, height uint64) error {
	for _, te := range tokens {
		meta := make(map[string]any, len(te.Metadata)+2)
		for k, v := range te.Metadata {
			meta[k] = v
		}
		if te.Supply != nil {
			meta["supply"] = *te.Supply
		}
		if te.Collection != "" {
			meta["collection"] = te.Collection
		}

		_, err := tx.Exec(ctx, `
INSERT INTO tokens (ref, type, metadata, genesis_txid, genesis_height, current_txid, current_output)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (ref) DO UPDATE
SET current_txid = EXCLUDED.current_txid, current_output = EXCLUDED.current_output`,
			te.Ref, te.Type, meta, te.TxID, height, te.TxID, te.Output)
		if err != nil {
			return fmt.Errorf("upsert token %s: %w", te.Ref, err)
		}
	}
	return nil
}

func addChainwork(prev string, bits uint32) (string, error) {
	total, ok := new(big.Int).SetString(prev, 16)
	if !ok {
		return "", fmt.Errorf("bad chainwork %q", prev)
	}
	total.Add(total, blockchain.CalcWork(bits))
	return total.Text(16), nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func dedupe(values []string) []string {
	if len(values) < 2 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
