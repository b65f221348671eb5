package download

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestQueue_Go_Done(t *testing.T) {
	q := NewQueue(0)

	done := q.Go(context.Background(), func(ctx context.Context) error {
		return nil
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("done channel was not closed in time")
	}
}

func TestQueue_Wait_JoinedErrors(t *testing.T) {
	err1 := errors.New("error one")
	err2 := errors.New("error two")
	q := NewQueue(0)

	q.Go(context.Background(), func(ctx context.Context) error { return err1 })
	q.Go(context.Background(), func(ctx context.Context) error { return err2 })

	err := q.Wait()
	if err == nil {
		t.Fatal("expected joined error, got nil")
	}
	if !errors.Is(err, err1) {
		t.Errorf("expected error to contain %v", err1)
	}
	if !errors.Is(err, err2) {
		t.Errorf("expected error to contain %v", err2)
	}
}

func TestQueue_Wait_MixedSuccessAndError(t *testing.T) {
	wantErr := errors.New("only failure")
	q := NewQueue(0)

	q.Go(context.Background(), func(ctx context.Context) error { return nil })
	q.Go(context.Background(), func(ctx context.Context) error { return wantErr })
	q.Go(context.Background(), func(ctx context.Context) error { return nil })

	if err := q.Wait(); !errors.Is(err, wantErr) {
		t.Errorf("expected %v, got %v", wantErr, err)
	}
}

func TestQueue_ConcurrencyLimit(t *testing.T) {
	const limit = 2
	const total = 5

	q := NewQueue(limit)

	var running atomic.Int32
	var maxRunning atomic.Int32

	for i := 0; i < total; i++ {
		q.Go(context.Background(), func(ctx context.Context) error {
			cur := running.Add(1)
			defer running.Add(-1)

			for {
				old := maxRunning.Load()
				if cur <= old || maxRunning.CompareAndSwap(old, cur) {
					break
				}
			}

			time.Sleep(10 * time.Millisecond)
			return nil
		})
	}

	if err := q.Wait(); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if got := maxRunning.Load(); got > limit {
		t.Errorf("expected at most %d concurrent workers, observed %d", limit, got)
	}
}

func TestQueue_Shutdown(t *testing.T) {
	q := NewQueue(1)

	release := make(chan struct{})
	q.Go(context.Background(), func(ctx context.Context) error {
		<-release
		return nil
	})

	q.Shutdown()
	q.Go(context.Background(), func(ctx context.Context) error {
		t.Error("work executed after shutdown")
		return nil
	})

	close(release)
	if err := q.Wait(); !errors.Is(err, ErrQueueShutdown) {
		t.Errorf("expected ErrQueueShutdown, got: %v", err)
	}
}

func TestQueue_ContextCancelledWhileQueued(t *testing.T) {
	q := NewQueue(1)

	release := make(chan struct{})
	q.Go(context.Background(), func(ctx context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := q.Go(ctx, func(ctx context.Context) error {
		t.Error("work executed despite cancellation")
		return nil
	})
	cancel()

	<-done
	close(release)

	if err := q.Wait(); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}
