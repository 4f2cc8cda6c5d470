package decode

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"
	"go.uber.org/zap"

	"github.com/Radiant-Core/rxindexer/internal/model"
	"github.com/Radiant-Core/rxindexer/internal/token"
)

// TxResolver resolves a referenced transaction for deep envelope
// inspection. Optional: a nil resolver skips lineage checks.
type TxResolver interface {
	RawTransaction(ctx context.Context, txid string) (*btcjson.TxRawResult, error)
}

// Decoder decodes verbose blocks and transactions into BlockEffects. It
// performs no storage I/O; the only outbound call is the optional resolver.
type Decoder struct {
	params   *chaincfg.Params
	resolver TxResolver
	logger   *zap.Logger
}

// New creates a Decoder for the given network name.
func New(network string, resolver TxResolver, logger *zap.Logger) (*Decoder, error) {
	params, err := chainParamsForNetwork(network)
	if err != nil {
		return nil, err
	}
	return &Decoder{
		params:   params,
		resolver: resolver,
		logger:   logger,
	}, nil
}

// DecodeBlock processes a block's transactions in their given order. A
// transaction may spend an output created earlier in the same block, so
// spends are resolved against the outputs-created-so-far map before being
// deferred to persisted state. Per-transaction failures are collected as
// soft errors; the block is never rejected for partial decode failures.
func (d *Decoder) DecodeBlock(ctx context.Context, src *btcjson.GetBlockVerboseTxResult) (*model.BlockEffect, error) {
	block, err := buildBlock(src)
	if err != nil {
		return nil, err
	}

	effect := &model.BlockEffect{Block: block}
	created := make(map[model.Outpoint]int)

	for i := range src.Tx {
		tx := &src.Tx[i]
		if err := d.decodeTx(ctx, tx, effect, created); err != nil {
			effect.SoftErrors = append(effect.SoftErrors, model.TxDecodeError{TxID: tx.Txid, Err: err})
			d.logger.Warn("transaction decode failed",
				zap.String("txid", tx.Txid),
				zap.Uint64("height", block.Height),
				zap.Error(err),
			)
		}
	}
	return effect, nil
}

// decodeTx appends the transaction's effects to the block effect, or
// returns an error leaving the effect untouched for this transaction.
func (d *Decoder) decodeTx(ctx context.Context, tx *btcjson.TxRawResult, effect *model.BlockEffect, created map[model.Outpoint]int) error {
	var spends []model.SpendEffect
	var intra []model.Outpoint
	utxos := make([]model.UTXO, 0, len(tx.Vout))

	for _, vin := range tx.Vin {
		if vin.IsCoinBase() {
			continue
		}
		out := model.Outpoint{TxID: vin.Txid, Index: vin.Vout}
		if _, ok := created[out]; ok {
			intra = append(intra, out)
			continue
		}
		spends = append(spends, model.SpendEffect{
			PrevTxID:    vin.Txid,
			PrevIndex:   vin.Vout,
			SpenderTxID: tx.Txid,
		})
	}

	for _, vout := range tx.Vout {
		addrs, err := d.outputAddresses(vout)
		if err != nil {
			return fmt.Errorf("output %d script: %w", vout.N, err)
		}
		if len(addrs) == 0 {
			continue
		}
		amount, err := Photons(vout.Value)
		if err != nil {
			return fmt.Errorf("output %d amount: %w", vout.N, err)
		}
		utxos = append(utxos, model.UTXO{
			TxID:        tx.Txid,
			Index:       vout.N,
			Address:     addrs[0],
			Amount:      amount,
			BlockHeight: effect.Block.Height,
			BlockHash:   effect.Block.Hash,
		})
	}

	tokens, err := d.decodeEnvelopes(ctx, tx, utxos)
	if err != nil {
		return err
	}

	// All effects decoded; commit them to the block effect. Intra-block
	// spends are applied to the in-memory outputs rather than emitted as
	// spend effects against persisted state.
	for _, out := range intra {
		u := &effect.NewUTXOs[created[out]]
		u.Spent = true
		u.SpentBy = tx.Txid
	}
	for _, u := range utxos {
		created[u.Outpoint()] = len(effect.NewUTXOs)
		effect.NewUTXOs = append(effect.NewUTXOs, u)
	}
	effect.Spends = append(effect.Spends, spends...)
	effect.Tokens = append(effect.Tokens, tokens...)
	effect.Txs = append(effect.Txs, model.Transaction{
		TxID:        tx.Txid,
		BlockHeight: effect.Block.Height,
		BlockHash:   effect.Block.Hash,
		Timestamp:   effect.Block.Timestamp,
	})
	return nil
}

// decodeEnvelopes scans inputs for Glyph envelopes and attaches token refs
// to their target outputs. Malformed envelopes are non-fatal: the input is
// treated as a plain transfer.
func (d *Decoder) decodeEnvelopes(ctx context.Context, tx *btcjson.TxRawResult, utxos []model.UTXO) ([]model.TokenEffect, error) {
	var tokens []model.TokenEffect

	for _, vin := range tx.Vin {
		if vin.IsCoinBase() || vin.ScriptSig == nil {
			continue
		}
		script, err := hex.DecodeString(vin.ScriptSig.Hex)
		if err != nil {
			return nil, fmt.Errorf("input script hex: %w", err)
		}

		env, err := token.Decode(script)
		if errors.Is(err, token.ErrNoEnvelope) {
			continue
		}
		var malformed *token.MalformedEnvelopeError
		if errors.As(err, &malformed) {
			d.logger.Warn("malformed token envelope, treating input as plain transfer",
				zap.String("txid", tx.Txid),
				zap.Error(err),
			)
			continue
		}
		if err != nil {
			return nil, err
		}

		idx, ok := utxoAt(utxos, env.Output)
		if !ok {
			d.logger.Warn("token envelope targets missing output",
				zap.String("txid", tx.Txid),
				zap.String("ref", env.Ref),
				zap.Uint32("output", env.Output),
			)
			continue
		}

		d.verifyLineage(ctx, tx.Txid, vin)

		utxos[idx].TokenRef = env.Ref
		tokens = append(tokens, model.TokenEffect{
			Ref:        env.Ref,
			Type:       env.Type,
			Metadata:   env.Metadata,
			Supply:     env.Supply,
			Collection: env.Collection,
			TxID:       tx.Txid,
			Output:     env.Output,
		})
	}
	return tokens, nil
}

// verifyLineage best-effort checks that an envelope-bearing input points at
// a real output of its referenced transaction. Failures are logged only:
// the upstream node is trusted and the registry stays consistent either way.
func (d *Decoder) verifyLineage(ctx context.Context, txid string, vin btcjson.Vin) {
	if d.resolver == nil {
		return
	}
	prev, err := d.resolver.RawTransaction(ctx, vin.Txid)
	if err != nil {
		d.logger.Debug("lineage lookup failed",
			zap.String("txid", txid),
			zap.String("prev_txid", vin.Txid),
			zap.Error(err),
		)
		return
	}
	if vin.Vout >= uint32(len(prev.Vout)) {
		d.logger.Warn("envelope input references missing output",
			zap.String("txid", txid),
			zap.String("prev_txid", vin.Txid),
			zap.Uint32("prev_vout", vin.Vout),
		)
	}
}

func utxoAt(utxos []model.UTXO, index uint32) (int, bool) {
	for i, u := range utxos {
		if u.Index == index {
			return i, true
		}
	}
	return 0, false
}
