package model

import "time"

// ContactMessage is a contact form submission on its way to the mail provider.
type ContactMessage struct {
	ID          string // assigned on acceptance
	Key         string // idempotency key, see dedupe.ContactKey
	Name        string
	Email       string
	Subject     string
	Message     string
	SubmittedAt time.Time
}

// Placeholders used when a submission leaves a field empty.
const (
	DefaultContactName    = "No Name Provided"
	DefaultContactEmail   = "no-email@provided.com"
	DefaultContactSubject = "No Subject"
	DefaultContactMessage = "No message content"
)

// WithDefaults returns a copy with empty fields replaced by placeholders.
func (m ContactMessage) WithDefaults() ContactMessage {
	if m.Name == "" {
		m.Name = DefaultContactName
	}
	if m.Email == "" {
		m.Email = DefaultContactEmail
	}
	if m.Subject == "" {
		m.Subject = DefaultContactSubject
	}
	if m.Message == "" {
		m.Message = DefaultContactMessage
	}
	return m
}
