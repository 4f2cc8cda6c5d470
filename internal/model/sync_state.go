package model

import "time"

// SyncState is the singleton source of truth for sync progress. The height,
// hash and chainwork fields advance only inside block-commit transactions;
// IsSyncing and LastError flip around sync passes.
type SyncState struct {
	CurrentHeight    uint64
	CurrentHash      string
	CurrentChainwork string
	IsSyncing        bool
	LastError        string
	LastUpdatedAt    time.Time
}

// SyncStatus is the read-only status surface exposed to operators.
type SyncStatus struct {
	Height     uint64
	NodeHeight uint64
	Progress   float64
	IsSyncing  bool
	LastError  string
}
