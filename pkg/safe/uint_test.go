package safe

import (
	"math"
	"testing"
)

func TestUint32(t *testing.T) {
	t.Parallel()

	if _, err := Uint32(int64(-1)); err == nil {
		t.Fatal("expected error for negative value")
	}
	if _, err := Uint32(int64(math.MaxUint32) + 1); err == nil {
		t.Fatal("expected error for overflow")
	}
	got, err := Uint32(int64(math.MaxUint32))
	if err != nil {
		t.Fatalf("Uint32() error = %v", err)
	}
	if got != math.MaxUint32 {
		t.Fatalf("Uint32() = %d, want %d", got, uint32(math.MaxUint32))
	}
	if v, err := Uint32(uint64(42)); err != nil || v != 42 {
		t.Fatalf("Uint32(42) = %d, %v", v, err)
	}
}

func TestUint64(t *testing.T) {
	t.Parallel()

	if _, err := Uint64(int(-5)); err == nil {
		t.Fatal("expected error for negative value")
	}
	got, err := Uint64(int64(math.MaxInt64))
	if err != nil {
		t.Fatalf("Uint64() error = %v", err)
	}
	if got != math.MaxInt64 {
		t.Fatalf("Uint64() = %d", got)
	}
}
