package model

import "time"

// Transaction ties a txid to the block that confirmed it.
type Transaction struct {
	TxID        string
	BlockHeight uint64
	BlockHash   string
	Timestamp   time.Time
}
