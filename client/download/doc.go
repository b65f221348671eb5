// Package download streams panorama image bodies to disk with optional
// checksum validation and progress reporting.
//
// # Single Download
//
// [Handle] writes the response body to a temporary file alongside the
// destination path, then atomically renames it on success:
//
//	err := download.Handle(ctx, resp.Body, resp.ContentLength, destPath, logger)
//
// # Batched Downloads
//
// [Queue] runs many downloads with a shared concurrency limit:
//
//	q := download.NewQueue(4)
//	for _, p := range page.Panoramas() {
//		q.Go(ctx, func(ctx context.Context) error {
//			return c.SaveImage(ctx, &p, client.SizeMedium, dir)
//		})
//	}
//	err := q.Wait()
//
// Most callers should use the higher-level
// [github.com/streetlevel/panorama/client] package, which invokes
// Handle internally via Client.SaveImage and drives Queue via
// AsyncClient.SaveImages.
package download
