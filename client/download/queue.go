package download

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// WorkFunc is the signature for one queued download.
type WorkFunc func(ctx context.Context) error

// Queue manages a batch of concurrent downloads with a shared
// concurrency limit. Its zero value is not usable; create one with
// [NewQueue].
type Queue struct {
	wg       sync.WaitGroup
	mu       sync.Mutex
	sem      chan struct{}
	shutdown atomic.Bool
	errs     []error
}

// NewQueue creates a Queue with the given concurrency limit.
// If maxConcurrent <= 0, concurrency is unlimited.
func NewQueue(maxConcurrent int) *Queue {
	q := &Queue{}
	if maxConcurrent > 0 {
		q.sem = make(chan struct{}, maxConcurrent)
	}
	return q
}

// Wait blocks until all queued downloads complete.
// Returns all errors joined via errors.Join.
func (q *Queue) Wait() error {
	q.wg.Wait()

	q.mu.Lock()
	defer q.mu.Unlock()

	return errors.Join(q.errs...)
}

// Shutdown prevents queued work that has not yet started from executing.
// Downloads already in flight run to completion.
func (q *Queue) Shutdown() {
	q.shutdown.Store(true)
}

// Go launches fn in a new goroutine managed by the queue, blocking on
// the semaphore when the concurrency limit is reached. The returned
// channel is closed when this specific download completes; aggregate
// errors arrive via [Queue.Wait].
func (q *Queue) Go(ctx context.Context, fn WorkFunc) <-chan struct{} {
	done := make(chan struct{})

	q.wg.Add(1)
	go func() {
		defer func() {
			close(done)
			q.wg.Done()
		}()

		if q.sem != nil {
			select {
			case q.sem <- struct{}{}:
				defer func() {
					<-q.sem
				}()
			case <-ctx.Done():
				q.recordErr(ctx.Err())
				return
			}
		}

		if q.shutdown.Load() {
			q.recordErr(ErrQueueShutdown)
			return
		}

		if err := fn(ctx); err != nil {
			q.recordErr(err)
		}
	}()

	return done
}

// recordErr appends err to the queue's error slice under the mutex.
func (q *Queue) recordErr(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.errs = append(q.errs, err)
}
