package query

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// dateLayout is the precision the API accepts for timestamp bounds.
const dateLayout = "2006-01-02"

// ErrInvalidQuery is the sentinel error wrapped by [InvalidError].
// It signals a caller-supplied filter that violates a precondition;
// retrying without fixing the input cannot succeed.
var ErrInvalidQuery = errors.New("invalid query")

// InvalidError is returned by [Build] when a filter fails validation.
type InvalidError struct {
	Detail string
	Err    error
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *InvalidError) Unwrap() error {
	return e.Err
}

type filters struct {
	location        *LocationQuery
	timestampAfter  *time.Time
	timestampBefore *time.Time
	limit           *int
}

// Option is a functional option narrowing a listing query.
type Option func(*filters)

// WithLocation restricts results to panoramas within loc.Radius meters
// of the given point. A zero SRID defaults to WGS84.
func WithLocation(loc LocationQuery) Option {
	return func(f *filters) {
		if loc.SRID == 0 {
			loc.SRID = SRIDWGS84
		}
		f.location = &loc
	}
}

// WithTimestampAfter keeps only panoramas captured on or after t.
// Date precision; the time of day is discarded.
func WithTimestampAfter(t time.Time) Option {
	return func(f *filters) {
		f.timestampAfter = &t
	}
}

// WithTimestampBefore keeps only panoramas captured before t.
// Date precision; the time of day is discarded.
func WithTimestampBefore(t time.Time) Option {
	return func(f *filters) {
		f.timestampBefore = &t
	}
}

// WithLimit caps the number of panoramas per page. The server applies
// its own maximum on top of this.
func WithLimit(n int) Option {
	return func(f *filters) {
		f.limit = &n
	}
}

// Build translates filter options into the listing endpoint's query
// parameters. The output is deterministic: identical options always
// produce an identical parameter set, and url.Values.Encode emits keys
// in sorted order.
//
// Build fails with an *InvalidError wrapping [ErrInvalidQuery] when a
// filter violates a precondition: negative radius, coordinates outside
// the WGS84 degree ranges, a non-positive limit, or date bounds with
// after > before.
func Build(opts ...Option) (url.Values, error) {
	var f filters
	for _, opt := range opts {
		opt(&f)
	}

	if f.limit != nil && *f.limit <= 0 {
		return nil, &InvalidError{
			Detail: fmt.Sprintf("limit must be positive, got %d", *f.limit),
			Err:    ErrInvalidQuery,
		}
	}

	if f.timestampAfter != nil && f.timestampBefore != nil && f.timestampAfter.After(*f.timestampBefore) {
		return nil, &InvalidError{
			Detail: fmt.Sprintf("timestamp bounds inverted: after %s > before %s",
				f.timestampAfter.Format(dateLayout), f.timestampBefore.Format(dateLayout)),
			Err: ErrInvalidQuery,
		}
	}

	if f.location != nil {
		if err := Validate(*f.location); err != nil {
			return nil, &InvalidError{Detail: err.Error(), Err: ErrInvalidQuery}
		}
	}

	params := url.Values{}
	if f.location != nil {
		// The upstream API orders the composite near parameter
		// longitude first.
		params.Set("near", formatFloat(f.location.Longitude)+","+formatFloat(f.location.Latitude))
		params.Set("radius", strconv.Itoa(f.location.Radius))
		params.Set("srid", strconv.Itoa(f.location.SRID))
	}
	if f.timestampAfter != nil {
		params.Set("timestamp_after", f.timestampAfter.Format(dateLayout))
	}
	if f.timestampBefore != nil {
		params.Set("timestamp_before", f.timestampBefore.Format(dateLayout))
	}
	if f.limit != nil {
		params.Set("limit_results", strconv.Itoa(*f.limit))
	}

	return params, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
