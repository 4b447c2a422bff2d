package smoke

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const contactPath = "/api/contact"

type contactForm struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
	SubmissionID string `json:"submission_id"`
}

func newContactForm(i int) contactForm {
	return contactForm{
		Name:         fmt.Sprintf("Smoke %d", i),
		Email:        fmt.Sprintf("smoke+%d@example.com", i),
		Subject:      "smoke test",
		Message:      "automated smoke test submission",
		SubmissionID: "smoke-" + uuid.NewString(),
	}
}

// checkContact submits cfg.Contacts forms concurrently, then resubmits the
// first one, which must be acknowledged as a duplicate.
func checkContact(ctx context.Context, c *client, cfg Config, report *Report) error {
	forms := make([]contactForm, cfg.Contacts)
	for i := range forms {
		forms[i] = newContactForm(i)
	}

	var accepted, duplicate, rejected, disabled int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, form := range forms {
		g.Go(func() error {
			status, err := c.postJSON(gctx, contactPath, form)
			if err != nil {
				return err
			}
			switch status {
			case http.StatusAccepted:
				atomic.AddInt64(&accepted, 1)
			case http.StatusOK:
				atomic.AddInt64(&duplicate, 1)
			case http.StatusServiceUnavailable:
				atomic.AddInt64(&disabled, 1)
			default:
				atomic.AddInt64(&rejected, 1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ErrContact, err)
	}

	report.ContactAccepted = int(accepted)
	report.ContactDuplicate = int(duplicate)
	report.ContactRejected = int(rejected)
	if disabled > 0 {
		report.ContactDisabled = true
		return nil
	}
	if accepted == 0 {
		return nil
	}

	status, err := c.postJSON(ctx, contactPath, forms[0])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrContact, err)
	}
	report.DuplicateDetected = status == http.StatusOK
	if !report.DuplicateDetected {
		return fmt.Errorf("%w: resubmission answered %d, want %d", ErrContact, status, http.StatusOK)
	}
	return nil
}
