package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrBackpressure    = errors.New("backpressure")
	ErrContactDisabled = errors.New("contact delivery not configured")
	ErrNotFound        = errors.New("not found")
)

// newKind tags a sentinel with the failing operation.
func newKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// wrapKind tags a sentinel with the operation and the underlying cause.
func wrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
