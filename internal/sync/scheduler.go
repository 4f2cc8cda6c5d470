package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Radiant-Core/rxindexer/internal/clock"
	"github.com/Radiant-Core/rxindexer/internal/model"
	"github.com/Radiant-Core/rxindexer/pkg/workerpool"
)

// ErrChunkAbandoned reports that a height inside a chunk kept failing after
// bounded retries. Everything below it is committed; the next pass resumes
// from the failed height.
var ErrChunkAbandoned = errors.New("chunk abandoned")

type fetchResult struct {
	height uint64
	effect *model.BlockEffect
	err    error
}

// scheduler fans fetch+decode tasks across a bounded worker pool and
// replays the resulting effects into the store in strict ascending height
// order, whatever order the workers finish in.
type scheduler struct {
	source       Source
	decoder      BlockDecoder
	store        Store
	metrics      Metrics
	logger       *zap.Logger
	sleep        func(context.Context, time.Duration) error
	chunkSize    uint64
	workers      int
	blockRetries int
	onCommit     func(context.Context, model.CommitResult)
}

// SyncRange ingests [from, to] chunk by chunk and returns the highest
// committed height. Progress below the returned height is durable even when
// an error is returned.
func (s *scheduler) SyncRange(ctx context.Context, from, to uint64) (uint64, error) {
	committed := from - 1
	for start := from; start <= to; start += s.chunkSize {
		end := start + s.chunkSize - 1
		if end > to {
			end = to
		}

		last, err := s.runChunk(ctx, start, end)
		if last > committed {
			committed = last
		}
		if err != nil {
			return committed, err
		}
	}
	return committed, nil
}

func (s *scheduler) runChunk(ctx context.Context, from, to uint64) (lastCommitted uint64, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveChunk(err, int(to-from+1), started)
	}()

	heights := make([]uint64, 0, to-from+1)
	for h := from; h <= to; h++ {
		heights = append(heights, h)
	}

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan fetchResult, len(heights))
	go func() {
		defer close(results)
		workerpool.Each(wctx, s.workers, heights, func(taskCtx context.Context, height uint64) {
			effect, fetchErr := s.fetchDecode(taskCtx, height)
			select {
			case results <- fetchResult{height: height, effect: effect, err: fetchErr}:
			case <-wctx.Done():
			}
		})
	}()

	pending := make(map[uint64]*model.BlockEffect, len(heights))
	next := from
	var failed uint64
	var hardErr error

	for res := range results {
		if hardErr != nil {
			continue
		}
		if res.err != nil {
			if failed == 0 || res.height < failed {
				failed = res.height
			}
			s.logger.Warn("block fetch+decode failed",
				zap.Uint64("height", res.height), zap.Error(res.err))
			continue
		}

		pending[res.height] = res.effect
		for {
			if failed != 0 && next >= failed {
				break
			}
			effect, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)

			if commitErr := s.commit(ctx, effect); commitErr != nil {
				hardErr = commitErr
				cancel()
				break
			}
			lastCommitted = next
			next++
		}
	}

	switch {
	case hardErr != nil:
		return lastCommitted, hardErr
	case ctx.Err() != nil:
		return lastCommitted, ctx.Err()
	case failed != 0:
		return lastCommitted, fmt.Errorf("%w at height %d", ErrChunkAbandoned, failed)
	default:
		return lastCommitted, nil
	}
}

// fetchDecode retrieves and decodes one block, retrying the whole unit a
// bounded number of times on top of the transport-level retries the source
// already performs.
func (s *scheduler) fetchDecode(ctx context.Context, height uint64) (*model.BlockEffect, error) {
	sleep := s.sleep
	if sleep == nil {
		sleep = clock.SleepWithContext
	}

	var lastErr error
	for attempt := 0; attempt < s.blockRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, blockRetryDelay); err != nil {
				return nil, err
			}
		}

		effect, err := s.fetchDecodeOnce(ctx, height)
		if err == nil {
			return effect, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("height %d after %d attempts: %w", height, s.blockRetries, lastErr)
}

func (s *scheduler) fetchDecodeOnce(ctx context.Context, height uint64) (*model.BlockEffect, error) {
	hash, err := s.source.BlockHash(ctx, height)
	if err != nil {
		return nil, fmt.Errorf("block hash: %w", err)
	}
	block, err := s.source.Block(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("block %s: %w", hash, err)
	}
	effect, err := s.decoder.DecodeBlock(ctx, block)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", hash, err)
	}
	return effect, nil
}

func (s *scheduler) commit(ctx context.Context, effect *model.BlockEffect) error {
	started := time.Now()
	res, err := s.store.ApplyBlock(ctx, effect)
	s.metrics.ObserveBlock(err, effect.Block.Height, started)
	if err != nil {
		return fmt.Errorf("apply block %d: %w", effect.Block.Height, err)
	}

	if s.onCommit != nil {
		s.onCommit(ctx, res)
	}
	return nil
}
