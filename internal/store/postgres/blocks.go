package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// BlockHashAtHeight returns the stored hash at the given height, or
// ErrNotFound when no block at that height has been committed.
func (s *Store) BlockHashAtHeight(ctx context.Context, height uint64) (hash string, err error) {
	started := time.Now()
	defer func() {
		s.observe("block_hash_at_height", err, started)
	}()

	err = s.pool.QueryRow(ctx, `SELECT hash FROM blocks WHERE height = $1`, height).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("block hash at %d: %w", height, err)
	}
	return hash, nil
}
