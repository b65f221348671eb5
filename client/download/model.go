package download

import (
	"errors"
	"fmt"
)

var (
	ErrContentLengthMismatch = errors.New("content length mismatch")
	ErrChecksumMismatch      = errors.New("checksum mismatch")
	ErrDownloadCancelled     = errors.New("download cancelled")
	ErrQueueShutdown         = errors.New("queue is shut down")
)

type Error struct {
	Detail string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}
