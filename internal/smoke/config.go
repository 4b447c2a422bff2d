// Package smoke checks a running portfolio service end to end: health,
// skill inventory consistency with the published projects, and contact
// form idempotency.
package smoke

import (
	"errors"
	"time"
)

// Defaults for Config fields left at zero.
const (
	DefaultTimeout = 10 * time.Second
	DefaultWorkers = 4
)

// Sentinel errors.
var (
	ErrUnhealthy = errors.New("service unhealthy")
	ErrMismatch  = errors.New("skill inventory mismatch")
	ErrContact   = errors.New("contact check failed")
)

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Timeout  time.Duration // HTTP request timeout
	Contacts int           // Contact submissions to send; 0 skips the contact check
	Workers  int           // Concurrent contact submissions
	Now      time.Time     // Reference time for the local aggregation; zero means time.Now
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.Workers <= 0 {
		out.Workers = DefaultWorkers
	}
	if out.Now.IsZero() {
		out.Now = time.Now().UTC()
	}
	return out
}

// Report summarises a smoke run.
type Report struct {
	Projects     int
	Categories   int
	Technologies string
	Mismatches   []string

	ContactDisabled   bool
	ContactAccepted   int
	ContactDuplicate  int
	ContactRejected   int
	DuplicateDetected bool

	Duration time.Duration
}
