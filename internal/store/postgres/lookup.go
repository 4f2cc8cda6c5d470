package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Radiant-Core/rxindexer/internal/model"
)

// UTXOByOutpoint returns a tracked output, spent or not.
func (s *Store) UTXOByOutpoint(ctx context.Context, op model.Outpoint) (u model.UTXO, err error) {
	started := time.Now()
	defer func() {
		s.observe("utxo_by_outpoint", err, started)
	}()

	var tokenRef, spentBy *string
	err = s.pool.QueryRow(ctx, `
SELECT txid, output_index, address, amount, token_ref, spent, spent_by_txid, block_height, block_hash
FROM utxos
WHERE txid = $1 AND output_index = $2`, op.TxID, op.Index).Scan(
		&u.TxID, &u.Index, &u.Address, &u.Amount, &tokenRef, &u.Spent, &spentBy, &u.BlockHeight, &u.BlockHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, ErrNotFound
	}
	if err != nil {
		return u, fmt.Errorf("utxo %s:%d: %w", op.TxID, op.Index, err)
	}
	if tokenRef != nil {
		u.TokenRef = *tokenRef
	}
	if spentBy != nil {
		u.SpentBy = *spentBy
	}
	return u, nil
}

// TokenByRef returns the registry row for a token ref.
func (s *Store) TokenByRef(ctx context.Context, ref string) (t model.Token, err error) {
	started := time.Now()
	defer func() {
		s.observe("token_by_ref", err, started)
	}()

	err = s.pool.QueryRow(ctx, `
SELECT ref, type, metadata, genesis_txid, genesis_height, current_txid, current_output
FROM tokens
WHERE ref = $1`, ref).Scan(
		&t.Ref, &t.Type, &t.Metadata, &t.GenesisTxID, &t.GenesisHeight, &t.CurrentTxID, &t.CurrentOutput)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrNotFound
	}
	if err != nil {
		return t, fmt.Errorf("token %s: %w", ref, err)
	}
	return t, nil
}

// HolderByAddress returns the aggregated balances for an address.
func (s *Store) HolderByAddress(ctx context.Context, address string) (h model.Holder, err error) {
	started := time.Now()
	defer func() {
		s.observe("holder_by_address", err, started)
	}()

	err = s.pool.QueryRow(ctx, `
SELECT address, native_balance, token_balances
FROM holders
WHERE address = $1`, address).Scan(&h.Address, &h.NativeBalance, &h.TokenBalances)
	if errors.Is(err, pgx.ErrNoRows) {
		return h, ErrNotFound
	}
	if err != nil {
		return h, fmt.Errorf("holder %s: %w", address, err)
	}
	return h, nil
}
