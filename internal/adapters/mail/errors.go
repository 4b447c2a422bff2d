package mail

import "errors"

// Sentinel kinds for delivery errors.
var (
	ErrNotConfigured = errors.New("mail sender not configured")
	ErrDelivery      = errors.New("mail delivery failed")
)
