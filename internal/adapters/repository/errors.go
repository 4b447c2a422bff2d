package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("project not found")
	ErrInvalidLimit = errors.New("invalid project limit")
	ErrLoad         = errors.New("load portfolio data")
)
