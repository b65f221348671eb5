// Package query builds the filter parameters accepted by the panorama
// listing endpoint.
//
// Filters are assembled from functional options and validated before
// serialization:
//
//	params, err := query.Build(
//		query.WithLocation(query.LocationQuery{Latitude: 52.36, Longitude: 4.91, Radius: 10}),
//		query.WithTimestampAfter(time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)),
//		query.WithLimit(100),
//	)
//
// Invalid filters fail with an *InvalidError wrapping [ErrInvalidQuery]:
//
//	if errors.Is(err, query.ErrInvalidQuery) { ... }
//
// Most callers never import this package directly; the client's
// ListPanoramas accepts the same options.
package query
