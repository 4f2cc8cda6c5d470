// Package node wraps the Radiant node JSON-RPC interface with retries and
// metrics instrumentation.
package node

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/Radiant-Core/rxindexer/pkg/safe"
)

// ErrUnavailable is returned once transport retries are exhausted. It aborts
// the current sync pass, not the process.
var ErrUnavailable = errors.New("node unavailable")

type (
	// Metrics records metrics for RPC calls.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// rawClient is the subset of rpcclient.Client the indexer uses.
	rawClient interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
		GetRawTransactionVerbose(txHash *chainhash.Hash) (*btcjson.TxRawResult, error)
	}
)

// RetryPolicy bounds the exponential backoff applied to transport failures
// and the wall-clock time a single attempt may take.
type RetryPolicy struct {
	Initial     time.Duration
	Multiplier  float64
	Cap         time.Duration
	Attempts    uint64
	CallTimeout time.Duration
}

// DefaultRetryPolicy matches the node flakiness observed in practice: short
// first pause, gentle growth, capped well below the pass timeout.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Initial:     2 * time.Second,
		Multiplier:  1.5,
		Cap:         30 * time.Second,
		Attempts:    10,
		CallTimeout: time.Minute,
	}
}

// Client is a retrying, instrumented Radiant RPC client. Stateless beyond
// the underlying connection pool; safe for concurrent callers.
type Client struct {
	raw     rawClient
	metrics Metrics
	logger  *zap.Logger
	policy  RetryPolicy
}

// New constructs a Client over a connected rpcclient.
func New(raw rawClient, metrics Metrics, logger *zap.Logger, policy RetryPolicy) *Client {
	return &Client{
		raw:     raw,
		metrics: metrics,
		logger:  logger,
		policy:  policy,
	}
}

// Height returns the node's current best height.
func (c *Client) Height(ctx context.Context) (uint64, error) {
	var count int64
	err := c.call(ctx, "get_block_count", func() error {
		var callErr error
		count, callErr = c.raw.GetBlockCount()
		return callErr
	})
	if err != nil {
		return 0, err
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// BlockHash returns the block hash at the given height.
func (c *Client) BlockHash(ctx context.Context, height uint64) (string, error) {
	if height > math.MaxInt64 {
		return "", fmt.Errorf("block height %d exceeds rpc limit", height)
	}
	var hash *chainhash.Hash
	err := c.call(ctx, "get_block_hash", func() error {
		var callErr error
		hash, callErr = c.raw.GetBlockHash(int64(height))
		return callErr
	})
	if err != nil {
		return "", fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	return hash.String(), nil
}

// Block returns the verbose block (with full transactions) for a hash.
func (c *Client) Block(ctx context.Context, hash string) (*btcjson.GetBlockVerboseTxResult, error) {
	parsed, err := chainhash.NewHashFromStr(hash)
	if err != nil {
		return nil, fmt.Errorf("parse block hash %q: %w", hash, err)
	}
	var block *btcjson.GetBlockVerboseTxResult
	err = c.call(ctx, "get_block_verbose_tx", func() error {
		var callErr error
		block, callErr = c.raw.GetBlockVerboseTx(parsed)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}
	return block, nil
}

// RawTransaction returns the verbose decoded transaction for a txid. Used
// for deep inspection of referenced outputs during token decoding.
func (c *Client) RawTransaction(ctx context.Context, txid string) (*btcjson.TxRawResult, error) {
	parsed, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return nil, fmt.Errorf("parse txid %q: %w", txid, err)
	}
	var tx *btcjson.TxRawResult
	err = c.call(ctx, "get_raw_transaction", func() error {
		var callErr error
		tx, callErr = c.raw.GetRawTransactionVerbose(parsed)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("get raw transaction %s: %w", txid, err)
	}
	return tx, nil
}

// call runs fn under the retry policy. JSON-RPC level errors (the node
// answered, the request is wrong) are not retried; transport failures are
// retried with capped exponential backoff and collapse into ErrUnavailable.
func (c *Client) call(ctx context.Context, operation string, fn func() error) (err error) {
	started := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.Observe(operation, err, started)
		}
	}()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.policy.Initial
	bo.Multiplier = c.policy.Multiplier
	bo.MaxInterval = c.policy.Cap
	bo.MaxElapsedTime = 0

	attempts := 0
	err = backoff.Retry(func() error {
		attempts++
		callErr := c.attempt(ctx, fn)
		if callErr == nil {
			return nil
		}
		var rpcErr *btcjson.RPCError
		if errors.As(callErr, &rpcErr) {
			return backoff.Permanent(callErr)
		}
		c.logger.Warn("rpc call failed, retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempts),
			zap.Error(callErr),
		)
		return callErr
	}, backoff.WithContext(backoff.WithMaxRetries(bo, c.policy.Attempts-1), ctx))

	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		return err
	}
	return fmt.Errorf("%w: %s after %d attempts: %v", ErrUnavailable, operation, attempts, err)
}

// attempt runs one RPC attempt bounded by the per-call timeout. The rpcclient
// calls are not context aware, so a stalled request is abandoned to its
// transport and surfaced as a retryable failure.
func (c *Client) attempt(ctx context.Context, fn func() error) error {
	if c.policy.CallTimeout <= 0 {
		return fn()
	}

	done := make(chan error, 1)
	go func() { done <- fn() }()

	timer := time.NewTimer(c.policy.CallTimeout)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return fmt.Errorf("rpc call stalled for %s: %w", c.policy.CallTimeout, context.DeadlineExceeded)
	}
}
