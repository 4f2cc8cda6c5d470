// Package model defines domain models for chain synchronization.
package model

import "time"

// Block represents a Radiant block persisted to Postgres. Rows are
// immutable and deleted only when their height is rolled back.
type Block struct {
	Hash       string
	Height     uint64
	PrevHash   string
	MerkleRoot string
	Timestamp  time.Time
	Bits       uint32
	Nonce      uint32
	Version    uint32
	Size       uint32
	TxCount    uint32
	Chainwork  string
}
