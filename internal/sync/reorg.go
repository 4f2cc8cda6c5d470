package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Radiant-Core/rxindexer/internal/store/postgres"
)

// ErrReorgTooDeep means no common ancestor was found within the configured
// search depth. Resolving it automatically would discard more history than
// policy allows, so it is surfaced for operator action.
var ErrReorgTooDeep = errors.New("reorg exceeds max search depth")

// reorgResolver compares the node's chain against stored state and rolls
// derived state back to the common ancestor when they diverge.
type reorgResolver struct {
	source   Source
	store    Store
	metrics  Metrics
	logger   *zap.Logger
	maxDepth uint64
}

// Check returns whether a rollback was performed. It must complete before
// forward sync resumes.
func (r *reorgResolver) Check(ctx context.Context) (rolledBack bool, err error) {
	started := time.Now()
	defer func() {
		r.metrics.ObserveReorgCheck(err, started)
	}()

	state, err := r.store.LoadSyncState(ctx)
	if err != nil {
		return false, err
	}
	if state.CurrentHeight == 0 {
		return false, nil
	}

	nodeHeight, err := r.source.Height(ctx)
	if err != nil {
		return false, err
	}
	compare := state.CurrentHeight
	if nodeHeight < compare {
		compare = nodeHeight
	}

	// A checkpoint the node still agrees with bounds the search: the common
	// ancestor can never be below it, so the walk stops there.
	anchorOK := false
	var anchor uint64
	if cp, cpErr := r.store.CheckpointAtOrBelow(ctx, compare); cpErr == nil {
		nodeHash, hashErr := r.source.BlockHash(ctx, cp.Height)
		if hashErr != nil {
			return false, hashErr
		}
		if nodeHash == cp.Hash {
			anchorOK, anchor = true, cp.Height
		}
	} else if !errors.Is(cpErr, postgres.ErrNotFound) {
		return false, cpErr
	}

	depthLimit := r.maxDepth
	if anchorOK && compare-anchor < depthLimit {
		depthLimit = compare - anchor
	}

	ancestorFound := false
	var ancestor uint64
	for depth := uint64(0); depth <= depthLimit; depth++ {
		if depth > compare {
			// Walked below the first stored block; nothing survives.
			ancestorFound, ancestor = true, 0
			break
		}
		height := compare - depth

		nodeHash, hashErr := r.source.BlockHash(ctx, height)
		if hashErr != nil {
			return false, hashErr
		}
		storedHash, storeErr := r.store.BlockHashAtHeight(ctx, height)
		if errors.Is(storeErr, postgres.ErrNotFound) {
			continue
		}
		if storeErr != nil {
			return false, storeErr
		}
		if nodeHash == storedHash {
			ancestorFound, ancestor = true, height
			break
		}
	}
	if !ancestorFound {
		// Resolving past the depth policy is an operator decision, even
		// when an older checkpoint would offer a recovery point.
		err = fmt.Errorf("%w: no common ancestor within %d blocks of %d", ErrReorgTooDeep, r.maxDepth, compare)
		if anchorOK {
			err = fmt.Errorf("%w; node still agrees with checkpoint at height %d", err, anchor)
		}
		return false, err
	}

	if ancestor == state.CurrentHeight {
		return false, nil
	}

	r.logger.Warn("chain divergence detected",
		zap.Uint64("current_height", state.CurrentHeight),
		zap.Uint64("node_height", nodeHeight),
		zap.Uint64("common_ancestor", ancestor))

	rbStarted := time.Now()
	if err = r.store.RollbackToHeight(ctx, ancestor); err != nil {
		return false, err
	}
	r.metrics.ObserveRollback(state.CurrentHeight-ancestor, rbStarted)

	if err = r.store.RecomputeHolders(ctx, nil); err != nil {
		return false, err
	}
	return true, nil
}
