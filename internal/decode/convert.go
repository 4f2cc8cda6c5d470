// Package decode turns verbose RPC blocks into storage-free BlockEffects.
package decode

import (
	"fmt"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"

	"github.com/Radiant-Core/rxindexer/internal/model"
	"github.com/Radiant-Core/rxindexer/pkg/safe"
)

// Photons converts an RXD amount to photons with overflow checks.
func Photons(value float64) (uint64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return safe.Uint64(int64(amt))
}

// ParseBits parses a compact-target bits string into a 32-bit value.
func ParseBits(value string) (uint32, error) {
	parsed, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(parsed), nil
}

// buildBlock maps a verbose block result into a model.Block. Chainwork is
// accumulated at commit time and left empty here.
func buildBlock(src *btcjson.GetBlockVerboseTxResult) (model.Block, error) {
	bits, err := ParseBits(src.Bits)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d bits parse: %w", src.Height, err)
	}
	height, err := safe.Uint64(src.Height)
	if err != nil {
		return model.Block{}, fmt.Errorf("block height %d: %w", src.Height, err)
	}
	version, err := safe.Uint32(src.Version)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d version overflow: %w", src.Height, err)
	}
	size, err := safe.Uint32(src.Size)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d size overflow: %w", src.Height, err)
	}
	txCount, err := safe.Uint32(len(src.Tx))
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d tx count overflow: %w", src.Height, err)
	}

	return model.Block{
		Hash:       src.Hash,
		Height:     height,
		PrevHash:   src.PreviousHash,
		MerkleRoot: src.MerkleRoot,
		Timestamp:  time.Unix(src.Time, 0).UTC(),
		Bits:       bits,
		Nonce:      src.Nonce,
		Version:    version,
		Size:       size,
		TxCount:    txCount,
	}, nil
}
