package client

import (
	"errors"
	"fmt"
	"net/http"
)

// maxErrBodySize caps the amount of response body read when
// building an error for an unexpected status code. This prevents
// unbounded memory usage when a large response arrives with a
// wrong status.
const maxErrBodySize = 4 << 10 // 4KB

// execFn represents a func to operate on a response.
type execFn func(response *http.Response) error

var (
	// ErrUnexpectedStatusCode is the sentinel error wrapped by [UnexpectedStatusError].
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	// ErrAuthFailure is joined with [ErrUnexpectedStatusCode] when the server
	// responds with 401 Unauthorized or 403 Forbidden.
	ErrAuthFailure = errors.New("auth failure")

	// ErrDecode is the sentinel error wrapped by [DecodeError]. It signals
	// a response body that does not match the published schema, which is
	// not retryable.
	ErrDecode = errors.New("malformed response body")

	// ErrNoMorePages is returned by NextPage when the current page carries
	// no next link. It is a terminal pagination condition, not a request
	// failure: no network call was made.
	ErrNoMorePages = errors.New("no next page available")
	// ErrNoPreviousPage is the NextPage counterpart for PreviousPage.
	ErrNoPreviousPage = errors.New("no previous page available")

	// ErrMissingVariant is the sentinel error wrapped by [MissingVariantError].
	ErrMissingVariant = errors.New("image size not available")
)

// UnexpectedStatusError is returned when the HTTP response status code
// does not match the expected value.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%v: %d, body: %s", e.Err, e.StatusCode, e.Body)
}

func (e *UnexpectedStatusError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a response body cannot be decoded into
// the expected model.
type DecodeError struct {
	Detail string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// MissingVariantError is returned when a panorama's link set lacks the
// requested image size. It is raised before any request is issued.
type MissingVariantError struct {
	PanoramaID string
	Size       ImageSize
	Err        error
}

func (e *MissingVariantError) Error() string {
	return fmt.Sprintf("%v: %q for panorama %s", e.Err, e.Size, e.PanoramaID)
}

func (e *MissingVariantError) Unwrap() error {
	return e.Err
}
