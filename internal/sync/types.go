// Package sync drives blockchain synchronization: parallel fetch+decode,
// strictly ordered commits, reorg resolution and checkpointing.
package sync

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcjson"

	"github.com/Radiant-Core/rxindexer/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Source is the upstream node surface the syncer reads from.
	Source interface {
		Height(ctx context.Context) (uint64, error)
		BlockHash(ctx context.Context, height uint64) (string, error)
		Block(ctx context.Context, hash string) (*btcjson.GetBlockVerboseTxResult, error)
	}

	// BlockDecoder turns a verbose block into its storage-free effect.
	BlockDecoder interface {
		DecodeBlock(ctx context.Context, src *btcjson.GetBlockVerboseTxResult) (*model.BlockEffect, error)
	}

	// Store is the derived-state surface the syncer writes to.
	Store interface {
		ApplyBlock(ctx context.Context, effect *model.BlockEffect) (model.CommitResult, error)
		RollbackToHeight(ctx context.Context, height uint64) error
		RecomputeHolders(ctx context.Context, addresses []string) error
		LoadSyncState(ctx context.Context) (model.SyncState, error)
		SetSyncing(ctx context.Context, syncing bool) (bool, error)
		ClearSyncing(ctx context.Context) error
		RecordSyncError(ctx context.Context, message string) error
		BlockHashAtHeight(ctx context.Context, height uint64) (string, error)
		CreateCheckpoint(ctx context.Context, cp model.Checkpoint) error
		CheckpointAtOrBelow(ctx context.Context, height uint64) (model.Checkpoint, error)
		PruneCheckpoints(ctx context.Context, keep int, minInterval uint64) (int64, error)
		Resync(ctx context.Context) error
	}

	// Metrics records syncer-level observations.
	Metrics interface {
		ObservePass(err error, started time.Time)
		ObserveChunk(err error, blocks int, started time.Time)
		ObserveBlock(err error, height uint64, started time.Time)
		ObserveReorgCheck(err error, started time.Time)
		ObserveRollback(depth uint64, started time.Time)
	}
)
