// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Batcher buffers items and flushes them through a callback either when the
// buffer reaches flushSize or when flushInterval elapses. Flushes are rate
// limited to rps per second.
type Batcher[T any] struct {
	flush         func(context.Context, []T) error
	items         chan T
	flushSize     int
	flushInterval time.Duration
	limiter       ratelimit.Limiter
	logger        *zap.Logger

	wg   sync.WaitGroup
	stop chan struct{}
}

// New constructs a Batcher. The flush callback owns the slice it receives
// only for the duration of the call.
func New[T any](logger *zap.Logger, flush func(context.Context, []T) error, flushSize int, flushInterval time.Duration, rps int) *Batcher[T] {
	return &Batcher[T]{
		logger:        logger,
		flush:         flush,
		items:         make(chan T, flushSize*2),
		flushSize:     flushSize,
		flushInterval: flushInterval,
		limiter:       ratelimit.New(rps),
		stop:          make(chan struct{}),
	}
}

// Start begins the background flushing loop. A stopped batcher may be
// started again; Start must not race a previous loop, so pair every Start
// with a Stop before the next one.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.stop = make(chan struct{})
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes whatever is buffered and stops the loop.
func (b *Batcher[T]) Stop() {
	close(b.stop)
	b.wg.Wait()
}

// Add queues an item for batching, respecting context cancellation.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return context.Canceled
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case b.items <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.flushSize)

	doFlush := func(flushCtx context.Context) {
		// Pull anything queued since the trigger fired.
		for len(buf) < cap(buf) {
			select {
			case item := <-b.items:
				buf = append(buf, item)
				continue
			default:
			}
			break
		}
		if len(buf) == 0 {
			return
		}

		b.limiter.Take()
		if err := b.flush(flushCtx, buf); err != nil {
			b.logger.Error("batch not flushed", zap.Error(err), zap.Int("size", len(buf)))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = buf[:0]
	}

	for {
		select {
		case <-ctx.Done():
			// The final flush must still reach the sink after a
			// cancellation-driven shutdown, or buffered items are lost.
			doFlush(context.WithoutCancel(ctx))
			return

		case <-b.stop:
			doFlush(context.WithoutCancel(ctx))
			return

		case item := <-b.items:
			buf = append(buf, item)
			if len(buf) >= b.flushSize {
				doFlush(ctx)
			}

		case <-ticker.C:
			doFlush(ctx)
		}
	}
}
