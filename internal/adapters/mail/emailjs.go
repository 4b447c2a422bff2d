package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/portfolio/internal/domain/model"
)

// DefaultEndpoint is the EmailJS REST send URL.
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

const (
	defaultToEmail = "your_email@example.com"
	defaultTimeout = 10 * time.Second
	websiteLabel   = "Portfolio Contact Form"
	maxErrorBody   = 512
)

// EmailJSSender posts messages to the EmailJS REST API.
type EmailJSSender struct {
	endpoint   string
	serviceID  string
	templateID string
	publicKey  string
	privateKey string
	toEmail    string
	client     *http.Client
	timeout    time.Duration
	clock      func() time.Time
}

// sendRequest is the EmailJS send payload.
type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// NewEmailJSSender creates a sender. It is unusable until credentials are set.
func NewEmailJSSender(opts ...Option) *EmailJSSender {
	s := &EmailJSSender{
		endpoint: DefaultEndpoint,
		toEmail:  defaultToEmail,
		client:   http.DefaultClient,
		timeout:  defaultTimeout,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configured reports whether service id, template id and public key are set.
func (s *EmailJSSender) Configured() bool {
	return s.serviceID != "" && s.templateID != "" && s.publicKey != ""
}

// Send delivers msg. Empty fields are replaced by placeholders first.
func (s *EmailJSSender) Send(ctx context.Context, msg model.ContactMessage) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      s.serviceID,
		TemplateID:     s.templateID,
		UserID:         s.publicKey,
		AccessToken:    s.privateKey,
		TemplateParams: s.templateParams(msg.WithDefaults()),
	})
	if err != nil {
		return fmt.Errorf("encode emailjs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: emailjs returned %s: %s", ErrDelivery, resp.Status, bytes.TrimSpace(detail))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// templateParams fills every variable name common EmailJS templates use.
func (s *EmailJSSender) templateParams(msg model.ContactMessage) map[string]string {
	submitted := msg.SubmittedAt
	if submitted.IsZero() {
		submitted = s.clock()
	}
	return map[string]string{
		"name":    msg.Name,
		"email":   msg.Email,
		"subject": msg.Subject,
		"message": msg.Message,

		"user_name":    msg.Name,
		"user_email":   msg.Email,
		"user_subject": msg.Subject,
		"user_message": msg.Message,

		"from_name":  msg.Name,
		"from_email": msg.Email,
		"reply_to":   msg.Email,
		"to_email":   s.toEmail,

		"contact_name":    msg.Name,
		"contact_email":   msg.Email,
		"contact_subject": msg.Subject,
		"contact_message": msg.Message,

		"timestamp": submitted.UTC().Format(time.RFC1123),
		"website":   websiteLabel,
	}
}

var _ Sender = (*EmailJSSender)(nil)
