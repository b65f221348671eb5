package throttle

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

var (
	ErrMustNotBeZero = errors.New("must be greater than zero")
	ErrWaitingFailed = errors.New("limiter waiting failed")
	ErrContextEnded  = errors.New("throttle context ended")
)

// Config defines the throttler's
// Requests Per Second and Burst Rate
type Config struct {
	RPS   int
	Burst int
}

// throttle is an http.RoundTripper, using the time/rate token
// bucket limiter to restrict outbound calls.
type throttle struct {
	limiter *rate.Limiter
	rps     int
	burst   int
	next    http.RoundTripper
	logger  *slog.Logger
}

// NewRoundTripper returns an http.RoundTripper that throttles outbound
// requests using a token bucket rate limiter. A nil logger skips the
// token-exhaustion reporting.
func NewRoundTripper(cfg Config, logger *slog.Logger, next http.RoundTripper) (http.RoundTripper, error) {
	if cfg.RPS <= 0 || cfg.Burst <= 0 {
		return nil, fmt.Errorf("rps[%d] and burst[%d] %w", cfg.RPS, cfg.Burst, ErrMustNotBeZero)
	}

	t := &throttle{
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		rps:     cfg.RPS,
		burst:   cfg.Burst,
		next:    next,
		logger:  logger,
	}

	return t, nil
}

func (t *throttle) RoundTrip(r *http.Request) (*http.Response, error) {
	if t.limiter == nil {
		return t.next.RoundTrip(r)
	}

	ctx := r.Context()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w early: %w", ErrContextEnded, err)
	}

	// Tokens only peeks at the bucket; Wait below is the sole consumer.
	var waited time.Duration
	if t.logger != nil && t.limiter.Tokens() < 1 {
		t.logger.Info("throttle tokens exhausted", "rate", t.rps, "burst", t.burst, "path", r.URL.Path)

		defer func() {
			t.logger.Info("throttle wait complete", "waited", waited.String(), "rate", t.rps, "burst", t.burst)
		}()
	}

	start := time.Now()

	err := t.limiter.Wait(ctx)
	waited = time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWaitingFailed, err)
	}

	if err := ctx.Err(); err != nil { // Check context hasn't expired again.
		return nil, fmt.Errorf("%w post-wait: %w", ErrContextEnded, err)
	}

	return t.next.RoundTrip(r)
}
