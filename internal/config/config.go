// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers a YAML file and env vars on top.
// - Errors returned from this package wrap ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"runtime"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir holds projects.json, profile.json and experience.json.
	// Missing files (or an empty DataDir) fall back to the embedded data set.
	DataDir string `koanf:"data_dir"`

	// MaxProjectLimit caps GET /api/projects?limit.
	MaxProjectLimit int `koanf:"max_project_limit"`

	// ContactQueueSize bounds the in-memory contact delivery queue.
	ContactQueueSize int `koanf:"contact_queue_size"`

	// WorkerCount sets the number of contact delivery workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets how many recent contact submissions are remembered.
	DedupeSize int `koanf:"dedupe_size"`

	// EmailJS credentials. Contact delivery is disabled unless service id,
	// template id and public key are all set.
	EmailJSEndpoint   string `koanf:"emailjs_endpoint"`
	EmailJSServiceID  string `koanf:"emailjs_service_id"`
	EmailJSTemplateID string `koanf:"emailjs_template_id"`
	EmailJSPublicKey  string `koanf:"emailjs_public_key"`
	EmailJSPrivateKey string `koanf:"emailjs_private_key"`

	// ContactToEmail is passed to the mail template as to_email.
	ContactToEmail string `koanf:"contact_to_email"`

	// ContactTimeoutMS bounds a single delivery attempt.
	ContactTimeoutMS int `koanf:"contact_timeout_ms"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		MaxProjectLimit:  100,
		ContactQueueSize: 1_000,
		WorkerCount:      runtime.NumCPU(),
		DedupeSize:       10_000,
		EmailJSEndpoint:  "https://api.emailjs.com/api/v1.0/email/send",
		ContactToEmail:   "your_email@example.com",
		ContactTimeoutMS: 10_000,
	}
}

// ContactTimeout returns ContactTimeoutMS as a duration.
func (c *Config) ContactTimeout() time.Duration {
	return time.Duration(c.ContactTimeoutMS) * time.Millisecond
}

// ContactConfigured reports whether the EmailJS credentials are complete.
func (c *Config) ContactConfigured() bool {
	return c.EmailJSServiceID != "" && c.EmailJSTemplateID != "" && c.EmailJSPublicKey != ""
}
