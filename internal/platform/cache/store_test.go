package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "games:week:1", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "weeks:all", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "weeks:all", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_Get_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(10 * time.Millisecond)
	ctx := context.Background()

	store.Set(ctx, "results:2025-1-1", "pending")
	if _, ok := store.Get(ctx, "results:2025-1-1"); !ok {
		t.Fatal("expected value before expiry")
	}

	time.Sleep(25 * time.Millisecond)
	if _, ok := store.Get(ctx, "results:2025-1-1"); ok {
		t.Fatal("expected value to expire")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "games:week:1", "a")
	store.Set(ctx, "games:week:2", "b")
	store.Set(ctx, "weeks:all", "c")

	store.DeletePrefix(ctx, "games:")

	if _, ok := store.Get(ctx, "games:week:1"); ok {
		t.Fatal("expected games:week:1 to be evicted")
	}
	if _, ok := store.Get(ctx, "games:week:2"); ok {
		t.Fatal("expected games:week:2 to be evicted")
	}
	if _, ok := store.Get(ctx, "weeks:all"); !ok {
		t.Fatal("expected weeks:all to survive")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
