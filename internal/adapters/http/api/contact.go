package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/okian/portfolio/internal/domain/dedupe"
	"github.com/okian/portfolio/internal/domain/model"
	"github.com/okian/portfolio/internal/domain/types"
	"github.com/okian/portfolio/pkg/metrics"
)

// Contact form limits.
const (
	maxContactBody   = 64 << 10
	maxNameLength    = 200
	maxSubjectLength = 300
	maxMessageLength = 10_000
	maxSubmissionID  = 128
)

// Ack statuses and rejection reasons recorded in metrics.
const (
	contactAccepted    = "accepted"
	contactDuplicate   = "duplicate"
	rejectDisabled     = "disabled"
	rejectInvalid      = "invalid"
	rejectBackpressure = "backpressure"
)

// contactRequest mirrors the OpenAPI schema for POST /api/contact.
type contactRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
	SubmissionID string `json:"submission_id"`
}

func (c *contactRequest) normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Subject = strings.TrimSpace(c.Subject)
	c.Message = strings.TrimSpace(c.Message)
	c.SubmissionID = strings.TrimSpace(c.SubmissionID)
}

func (c contactRequest) validate() error {
	switch {
	case c.Email == "":
		return errors.New("missing email")
	case c.Message == "":
		return errors.New("missing message")
	case utf8.RuneCountInString(c.Name) > maxNameLength:
		return fmt.Errorf("name longer than %d characters", maxNameLength)
	case utf8.RuneCountInString(c.Subject) > maxSubjectLength:
		return fmt.Errorf("subject longer than %d characters", maxSubjectLength)
	case utf8.RuneCountInString(c.Message) > maxMessageLength:
		return fmt.Errorf("message longer than %d characters", maxMessageLength)
	case len(c.SubmissionID) > maxSubmissionID:
		return fmt.Errorf("submission_id longer than %d bytes", maxSubmissionID)
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return errors.New("invalid email address")
	}
	return nil
}

// ContactHandler accepts contact form submissions.
type ContactHandler struct {
	deps  ContactDependencies
	clock func() time.Time
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(deps ContactDependencies) *ContactHandler {
	return &ContactHandler{deps: deps, clock: time.Now}
}

// HandlePostContact handles POST /api/contact requests.
func (h *ContactHandler) HandlePostContact(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_contact"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if !h.deps.ContactEnabled() {
		metrics.RecordContactRejected(rejectDisabled)
		writeError(w, http.StatusServiceUnavailable, "contact_disabled", newKind(op, ErrContactDisabled))
		return
	}

	var req contactRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxContactBody)).Decode(&req); err != nil {
		metrics.RecordContactRejected(rejectInvalid)
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	req.normalize()
	if err := req.validate(); err != nil {
		metrics.RecordContactRejected(rejectInvalid)
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}

	// Idempotency check - mark as seen first
	key := dedupe.ContactKey(req.SubmissionID, req.Email, req.Subject, req.Message)
	if h.deps.SeenAndRecord(r.Context(), key) {
		metrics.RecordContactDuplicate()
		writeJSON(w, http.StatusOK, types.ContactAck{Status: contactDuplicate, Duplicate: true})
		return
	}

	msg := model.ContactMessage{
		ID:          uuid.NewString(),
		Key:         key,
		Name:        req.Name,
		Email:       req.Email,
		Subject:     req.Subject,
		Message:     req.Message,
		SubmittedAt: h.clock().UTC(),
	}
	if err := h.deps.Enqueue(r.Context(), msg); err != nil {
		// Rollback the "seen" status since enqueue failed
		h.deps.Unrecord(r.Context(), key)
		metrics.RecordContactRejected(rejectBackpressure)
		writeError(w, http.StatusTooManyRequests, "backpressure", wrapKind(op, ErrBackpressure, err))
		return
	}

	metrics.RecordContactAccepted()
	writeJSON(w, http.StatusAccepted, types.ContactAck{Status: contactAccepted, ID: msg.ID})
}
