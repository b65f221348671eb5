package client

import (
	"context"

	"github.com/streetlevel/panorama/client/download"
	"github.com/streetlevel/panorama/client/query"
)

// Result represents an in-flight or completed async call.
type Result[T any] struct {
	done   chan struct{}
	val    T
	err    error
	cancel context.CancelFunc
}

// Done returns a channel that is closed when the call completes.
func (r *Result[T]) Done() <-chan struct{} { return r.done }

// Value blocks until the call completes and returns its outcome.
func (r *Result[T]) Value() (T, error) {
	<-r.done
	return r.val, r.err
}

// Err blocks until the call completes and returns its error.
func (r *Result[T]) Err() error {
	<-r.done
	return r.err
}

// Cancel cancels this call's context. The call still completes;
// Value and Err then report the cancellation.
func (r *Result[T]) Cancel() {
	r.cancel()
}

// start launches fn in its own goroutine and hands back a Result
// resolving to fn's outcome.
func start[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Result[T] {
	ctx, cancel := context.WithCancel(ctx)
	r := &Result[T]{
		done:   make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer func() {
			cancel()
			close(r.done)
		}()

		r.val, r.err = fn(ctx)
	}()

	return r
}

// AsyncClient exposes the [Client] method set without blocking the
// caller: every method launches the request in its own goroutine and
// returns a [Result] to collect the outcome. The underlying Client
// holds no mutable cross-call state, so any number of calls may be
// outstanding on one instance.
type AsyncClient struct {
	c *Client
}

// BuildAsync assembles an [AsyncClient] from the same options as [Build].
func BuildAsync(optFns ...Option) (*AsyncClient, error) {
	c, err := Build(optFns...)
	if err != nil {
		return nil, err
	}

	return c.Async(), nil
}

// Async returns the non-blocking twin of this client, sharing its
// transport and connection pool.
func (c *Client) Async() *AsyncClient {
	return &AsyncClient{c: c}
}

// Sync returns the underlying blocking client.
func (a *AsyncClient) Sync() *Client {
	return a.c
}

// ListPanoramas is the non-blocking twin of [Client.ListPanoramas].
func (a *AsyncClient) ListPanoramas(ctx context.Context, filters ...query.Option) *Result[*PagedPanoramasResponse] {
	return start(ctx, func(ctx context.Context) (*PagedPanoramasResponse, error) {
		return a.c.ListPanoramas(ctx, filters...)
	})
}

// NextPage is the non-blocking twin of [Client.NextPage].
func (a *AsyncClient) NextPage(ctx context.Context, page *PagedPanoramasResponse) *Result[*PagedPanoramasResponse] {
	return start(ctx, func(ctx context.Context) (*PagedPanoramasResponse, error) {
		return a.c.NextPage(ctx, page)
	})
}

// PreviousPage is the non-blocking twin of [Client.PreviousPage].
func (a *AsyncClient) PreviousPage(ctx context.Context, page *PagedPanoramasResponse) *Result[*PagedPanoramasResponse] {
	return start(ctx, func(ctx context.Context) (*PagedPanoramasResponse, error) {
		return a.c.PreviousPage(ctx, page)
	})
}

// GetPanorama is the non-blocking twin of [Client.GetPanorama].
func (a *AsyncClient) GetPanorama(ctx context.Context, id string) *Result[*Panorama] {
	return start(ctx, func(ctx context.Context) (*Panorama, error) {
		return a.c.GetPanorama(ctx, id)
	})
}

// DownloadImage is the non-blocking twin of [Client.DownloadImage].
func (a *AsyncClient) DownloadImage(ctx context.Context, pano *Panorama, size ImageSize) *Result[[]byte] {
	return start(ctx, func(ctx context.Context) ([]byte, error) {
		return a.c.DownloadImage(ctx, pano, size)
	})
}

// SaveImage is the non-blocking twin of [Client.SaveImage]. The Result
// resolves to the destination path on success.
func (a *AsyncClient) SaveImage(ctx context.Context, pano *Panorama, size ImageSize, destDir string, opts ...download.Option) *Result[string] {
	return start(ctx, func(ctx context.Context) (string, error) {
		if err := a.c.SaveImage(ctx, pano, size, destDir, opts...); err != nil {
			return "", err
		}
		return destPath(destDir, pano), nil
	})
}

// SaveImages streams one image per panorama to destDir, at most
// maxConcurrent at a time (unlimited when <= 0). Wait on the returned
// queue to collect the joined errors; panoramas lacking the requested
// size variant fail individually without aborting the batch.
func (a *AsyncClient) SaveImages(ctx context.Context, panos []Panorama, size ImageSize, destDir string, maxConcurrent int, opts ...download.Option) *download.Queue {
	q := download.NewQueue(maxConcurrent)
	for _, pano := range panos {
		pano := pano
		q.Go(ctx, func(ctx context.Context) error {
			return a.c.SaveImage(ctx, &pano, size, destDir, opts...)
		})
	}

	return q
}
