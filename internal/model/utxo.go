package model

// Outpoint identifies a transaction output.
type Outpoint struct {
	TxID  string
	Index uint32
}

// UTXO is a spendable output. Spends flip Spent in place and record the
// spender; rows are deleted only during a rollback of their height.
type UTXO struct {
	TxID        string
	Index       uint32
	Address     string
	Amount      uint64
	TokenRef    string
	Spent       bool
	SpentBy     string
	BlockHeight uint64
	BlockHash   string
}

// Outpoint returns the identifying outpoint of the UTXO.
func (u UTXO) Outpoint() Outpoint {
	return Outpoint{TxID: u.TxID, Index: u.Index}
}
