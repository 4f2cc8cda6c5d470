// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Process runs process over items with at most workerCount concurrent
// workers. The first error cancels the shared context and stops dispatching
// further items.
func Process[T any](ctx context.Context, workerCount int, items []T, process func(context.Context, T) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount)

	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		item := item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return process(ctx, item)
		})
	}

	return g.Wait()
}

// Each runs process over items with at most workerCount concurrent workers,
// never failing fast: every item is attempted unless the context is
// canceled. Item-level outcomes are the caller's to collect inside process.
func Each[T any](ctx context.Context, workerCount int, items []T, process func(context.Context, T)) {
	g := new(errgroup.Group)
	g.SetLimit(workerCount)

	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		item := item
		g.Go(func() error {
			if ctx.Err() == nil {
				process(ctx, item)
			}
			return nil
		})
	}

	_ = g.Wait()
}
