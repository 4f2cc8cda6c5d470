package model

import "time"

// Checkpoint is an advisory (height, hash) snapshot. Append-only, pruned by
// retention policy; bounds reorg search depth and aids diagnostics.
type Checkpoint struct {
	Height    uint64
	Hash      string
	CreatedAt time.Time
	Meta      map[string]any
}
