package client

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/streetlevel/panorama/client/throttle"
)

// Option is a functional option for configuring a [Client] via [Build].
type Option func(*options) error

type options struct {
	client            *http.Client
	rt                http.RoundTripper
	baseURL           *url.URL
	timeout           *time.Duration
	userAgent         string
	apiKey            string
	throttle          *throttle.Config
	tracerProvider    trace.TracerProvider
	noFollowRedirects bool
	logger            *slog.Logger
}

// WithHTTPClient replaces the default [http.Client] used by the [Client].
func WithHTTPClient(hc *http.Client) Option {
	return func(c *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		c.client = hc
		return nil
	}
}

// WithTransport sets a custom [http.RoundTripper] as the base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		c.rt = rt
		return nil
	}
}

// WithBaseURL overrides [DefaultBaseURL], pointing the client at a
// different deployment of the panorama API.
func WithBaseURL(rawURL string) Option {
	return func(c *options) error {
		u, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("parsing base url: %w", err)
		}
		if !u.IsAbs() {
			return errors.New("base url must be absolute")
		}
		c.baseURL = u
		return nil
	}
}

// WithTimeout sets the overall request timeout on the underlying [http.Client].
func WithTimeout(d time.Duration) Option {
	return func(c *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		c.timeout = &d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) Option {
	return func(c *options) error {
		c.userAgent = header
		return nil
	}
}

// WithAPIKey adds a persistent X-Api-Key header to all outgoing
// requests. The public Amsterdam deployment requires no key; private
// mirrors may.
func WithAPIKey(key string) Option {
	return func(c *options) error {
		if key == "" {
			return errors.New("api key must not be empty")
		}
		c.apiKey = key
		return nil
	}
}

// WithThrottle enables token-bucket rate limiting with the given requests per second and burst capacity.
func WithThrottle(rps, burst int) Option {
	return func(c *options) error {
		if rps <= 0 || burst <= 0 {
			return fmt.Errorf("rps[%d] and burst[%d] %w", rps, burst, throttle.ErrMustNotBeZero)
		}
		c.throttle = &throttle.Config{RPS: rps, Burst: burst}
		return nil
	}
}

// WithTracerProvider emits one client span per outgoing request through
// the given provider, with W3C trace context injected into the request
// headers. Without this option no spans are recorded.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *options) error {
		if tp == nil {
			return errors.New("tracer provider must not be nil")
		}
		c.tracerProvider = tp
		return nil
	}
}

// WithNoFollowRedirects prevents the [Client] from following HTTP redirects.
func WithNoFollowRedirects() Option {
	return func(c *options) error {
		c.noFollowRedirects = true
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(c *options) error {
		c.logger = logger
		return nil
	}
}
