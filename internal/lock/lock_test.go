package lock

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestLeaseMutualExclusion(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	lease := NewLease(store, "test:lock", time.Minute, testLogger())

	ok, err := lease.Acquire(ctx, "owner-a")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if !ok {
		t.Fatal("Acquire() = false, want true for free lock")
	}

	ok, err = lease.Acquire(ctx, "owner-b")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if ok {
		t.Fatal("Acquire() = true for held lock, want false")
	}
}

func TestLeaseReleaseFreesLock(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	lease := NewLease(store, "test:lock", time.Minute, testLogger())

	if ok, _ := lease.Acquire(ctx, "owner-a"); !ok {
		t.Fatal("first Acquire() = false, want true")
	}
	lease.Release(ctx, "owner-a")

	ok, err := lease.Acquire(ctx, "owner-b")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if !ok {
		t.Fatal("Acquire() after release = false, want true")
	}
}

func TestLeaseReleaseWrongTokenIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	lease := NewLease(store, "test:lock", time.Minute, testLogger())

	if ok, _ := lease.Acquire(ctx, "owner-a"); !ok {
		t.Fatal("Acquire() = false, want true")
	}

	// A stale owner must not clobber the active owner's lock.
	lease.Release(ctx, "owner-stale")

	val, err := store.Get(ctx, "test:lock")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if val != "owner-a" {
		t.Fatalf("lock value = %q after mismatched release, want %q", val, "owner-a")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	current := time.Unix(1000, 0)
	store.now = func() time.Time { return current }

	if ok, _ := store.SetNX(ctx, "k", "a", time.Minute); !ok {
		t.Fatal("SetNX() = false on empty store, want true")
	}
	if ok, _ := store.SetNX(ctx, "k", "b", time.Minute); ok {
		t.Fatal("SetNX() = true before expiry, want false")
	}

	current = current.Add(61 * time.Second)

	if val, _ := store.Get(ctx, "k"); val != "" {
		t.Fatalf("Get() = %q after expiry, want empty", val)
	}
	ok, err := store.SetNX(ctx, "k", "b", time.Minute)
	if err != nil {
		t.Fatalf("SetNX() error = %v", err)
	}
	if !ok {
		t.Fatal("SetNX() = false after expiry, want true")
	}
}
