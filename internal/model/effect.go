package model

// SpendEffect marks a previously created output as consumed.
type SpendEffect struct {
	PrevTxID    string
	PrevIndex   uint32
	SpenderTxID string
}

// TokenEffect records a Glyph envelope found on one of a transaction's
// inputs. Whether it is a genesis or a transfer is decided at commit time by
// whether the ref already exists in the registry.
type TokenEffect struct {
	Ref        string
	Type       string
	Metadata   map[string]any
	Supply     *uint64
	Collection string
	TxID       string
	Output     uint32
}

// TxDecodeError is a soft per-transaction decode failure collected on a
// BlockEffect. It never rejects the whole block.
type TxDecodeError struct {
	TxID string
	Err  error
}

// BlockEffect is the fully decoded, storage-free result of processing one
// block: header fields plus ordered spend, new-UTXO and token effect lists.
type BlockEffect struct {
	Block      Block
	Txs        []Transaction
	Spends     []SpendEffect
	NewUTXOs   []UTXO
	Tokens     []TokenEffect
	SoftErrors []TxDecodeError
}

// CommitResult reports what an atomic block application changed.
type CommitResult struct {
	Height         uint64
	Hash           string
	Chainwork      string
	CreatedUTXOs   int
	SpentUTXOs     int
	TokenEffects   int
	DirtyAddresses []string
}
