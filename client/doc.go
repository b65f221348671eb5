// Package client implements the panorama API client, in blocking and
// non-blocking variants with an identical method set.
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build(
//		client.WithTimeout(10 * time.Second),
//		client.WithUserAgent("myapp/1.0"),
//	)
//
// # Listing Panoramas
//
// Filters come from the query subpackage; pages are walked through
// their opaque next links:
//
//	page, err := c.ListPanoramas(ctx,
//		query.WithLocation(query.LocationQuery{Latitude: 52.36, Longitude: 4.91, Radius: 10}),
//		query.WithLimit(100),
//	)
//	for {
//		// ... use page.Panoramas() ...
//		page, err = c.NextPage(ctx, page)
//		if errors.Is(err, client.ErrNoMorePages) {
//			break
//		}
//	}
//
// # Images
//
// [Client.DownloadImage] returns raw bytes; [Client.SaveImage] streams
// to disk with temp-file-then-rename semantics. Both fail with
// [ErrMissingVariant], before any network call, when the panorama
// lacks the requested size.
//
// # Async
//
// [Client.Async] (or [BuildAsync]) yields the [AsyncClient] twin whose
// methods return immediately with a [Result]:
//
//	r := c.Async().ListPanoramas(ctx)
//	// ... do other work ...
//	page, err := r.Value()
//
// For batched image downloads with a concurrency limit see
// [AsyncClient.SaveImages].
package client
