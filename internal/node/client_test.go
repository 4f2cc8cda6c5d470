package node

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"
)

// fakeRaw scripts per-call failures before succeeding.
type fakeRaw struct {
	failures int
	calls    int
	err      error
	height   int64
}

func (f *fakeRaw) GetBlockCount() (int64, error) {
	f.calls++
	if f.calls <= f.failures {
		return 0, f.err
	}
	return f.height, nil
}

func (f *fakeRaw) GetBlockHash(int64) (*chainhash.Hash, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return &chainhash.Hash{}, nil
}

func (f *fakeRaw) GetBlockVerboseTx(*chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error) {
	return nil, errors.New("not scripted")
}

func (f *fakeRaw) GetRawTransactionVerbose(*chainhash.Hash) (*btcjson.TxRawResult, error) {
	return nil, errors.New("not scripted")
}

func fastPolicy(attempts uint64) RetryPolicy {
	return RetryPolicy{
		Initial:    time.Millisecond,
		Multiplier: 1.5,
		Cap:        5 * time.Millisecond,
		Attempts:   attempts,
	}
}

func TestClient_RetriesTransportFailures(t *testing.T) {
	t.Parallel()

	raw := &fakeRaw{failures: 3, err: errors.New("connection refused"), height: 1200}
	c := New(raw, nil, zap.NewNop(), fastPolicy(5))

	height, err := c.Height(context.Background())
	if err != nil {
		t.Fatalf("Height() error = %v", err)
	}
	if height != 1200 {
		t.Fatalf("Height() = %d, want 1200", height)
	}
	if raw.calls != 4 {
		t.Fatalf("calls = %d, want 4", raw.calls)
	}
}

func TestClient_CapsIntoUnavailable(t *testing.T) {
	t.Parallel()

	raw := &fakeRaw{failures: 100, err: errors.New("connection refused")}
	c := New(raw, nil, zap.NewNop(), fastPolicy(3))

	_, err := c.Height(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Height() error = %v, want ErrUnavailable", err)
	}
	if raw.calls != 3 {
		t.Fatalf("calls = %d, want 3", raw.calls)
	}
}

func TestClient_DoesNotRetryRPCErrors(t *testing.T) {
	t.Parallel()

	rpcErr := &btcjson.RPCError{Code: btcjson.ErrRPCOutOfRange, Message: "Block height out of range"}
	raw := &fakeRaw{failures: 100, err: rpcErr}
	c := New(raw, nil, zap.NewNop(), fastPolicy(10))

	_, err := c.BlockHash(context.Background(), 10)
	if errors.Is(err, ErrUnavailable) {
		t.Fatalf("rpc-level error collapsed into ErrUnavailable: %v", err)
	}
	var got *btcjson.RPCError
	if !errors.As(err, &got) {
		t.Fatalf("BlockHash() error = %v, want RPCError", err)
	}
	if raw.calls != 1 {
		t.Fatalf("calls = %d, want 1 (no retries)", raw.calls)
	}
}

// stalledRaw hangs every block-count call until released, like a node with a
// wedged connection that never answers or closes.
type stalledRaw struct {
	fakeRaw
	release chan struct{}
}

func (f *stalledRaw) GetBlockCount() (int64, error) {
	<-f.release
	return 0, errors.New("released")
}

func TestClient_AbandonsStalledCall(t *testing.T) {
	t.Parallel()

	raw := &stalledRaw{release: make(chan struct{})}
	defer close(raw.release)

	policy := fastPolicy(2)
	policy.CallTimeout = 10 * time.Millisecond
	c := New(raw, nil, zap.NewNop(), policy)

	started := time.Now()
	_, err := c.Height(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Height() error = %v, want ErrUnavailable", err)
	}
	if elapsed := time.Since(started); elapsed > time.Second {
		t.Fatalf("stalled call held the caller for %s", elapsed)
	}
}

func TestClient_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	raw := &fakeRaw{failures: 100, err: errors.New("connection refused")}
	c := New(raw, nil, zap.NewNop(), fastPolicy(10))

	_, err := c.Height(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Height() error = %v, want context.Canceled", err)
	}
}
