package model

// Holder aggregates an address's balances from its unspent UTXOs. Derived
// and rebuildable; never treated as authoritative.
type Holder struct {
	Address       string
	NativeBalance uint64
	TokenBalances map[string]uint64
}
