package worker

import "errors"

// ErrAbandoned marks messages still queued when shutdown ran out of time.
var ErrAbandoned = errors.New("message abandoned at shutdown")
