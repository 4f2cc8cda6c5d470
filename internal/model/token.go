package model

// Token is a registry row for a Glyph token. The genesis fields are set
// once when the ref is first seen; the current pointer tracks the unspent
// UTXO carrying the ref after the latest transfer.
type Token struct {
	Ref           string
	Type          string
	Metadata      map[string]any
	GenesisTxID   string
	GenesisHeight uint64
	CurrentTxID   string
	CurrentOutput uint32
}
