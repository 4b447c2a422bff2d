package mail

import (
	"net/http"
	"time"
)

// Option configures an EmailJSSender.
type Option func(*EmailJSSender)

// WithEndpoint overrides the EmailJS send URL.
func WithEndpoint(url string) Option {
	return func(s *EmailJSSender) {
		if url != "" {
			s.endpoint = url
		}
	}
}

// WithCredentials sets the EmailJS service, template and public key.
func WithCredentials(serviceID, templateID, publicKey string) Option {
	return func(s *EmailJSSender) {
		s.serviceID = serviceID
		s.templateID = templateID
		s.publicKey = publicKey
	}
}

// WithPrivateKey sets the optional access token sent as accessToken.
func WithPrivateKey(key string) Option {
	return func(s *EmailJSSender) {
		s.privateKey = key
	}
}

// WithToEmail sets the recipient passed to the template as to_email.
func WithToEmail(addr string) Option {
	return func(s *EmailJSSender) {
		if addr != "" {
			s.toEmail = addr
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *EmailJSSender) {
		if c != nil {
			s.client = c
		}
	}
}

// WithTimeout bounds each send call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *EmailJSSender) {
		if d >= 0 {
			s.timeout = d
		}
	}
}

// WithClock sets the time source for the timestamp template parameter.
func WithClock(clock func() time.Time) Option {
	return func(s *EmailJSSender) {
		if clock != nil {
			s.clock = clock
		}
	}
}
