// Package throttle provides an [http.RoundTripper] that rate-limits
// outbound HTTP requests using a token-bucket algorithm from
// [golang.org/x/time/rate].
//
// The panorama API is a shared public service; bulk listing or image
// retrieval should be throttled. Wrap an existing transport with
// [NewRoundTripper]:
//
//	rt, err := throttle.NewRoundTripper(
//		throttle.Config{RPS: 10, Burst: 5},
//		slog.Default(),
//		http.DefaultTransport,
//	)
//	httpClient := &http.Client{Transport: rt}
//
// Most callers should instead pass client.WithThrottle to the client
// builder, which installs this round tripper for them.
//
// When the rate limit is exceeded, outbound requests block until a
// token becomes available or the request context is cancelled.
package throttle
