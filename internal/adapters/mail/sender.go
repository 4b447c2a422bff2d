// Package mail delivers contact form submissions to the site owner.
package mail

import (
	"context"

	"github.com/okian/portfolio/internal/domain/model"
)

// Sender delivers one contact message.
type Sender interface {
	Send(ctx context.Context, msg model.ContactMessage) error
	// Configured reports whether Send can succeed at all.
	Configured() bool
}
