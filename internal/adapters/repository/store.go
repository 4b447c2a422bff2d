// Package repository serves the portfolio's static content: profile,
// projects and work history.
package repository

import (
	"context"

	"github.com/okian/portfolio/internal/domain/model"
)

// Filter narrows a project listing. Zero values match everything.
type Filter struct {
	// Category matches case-insensitively.
	Category string
	// Featured, when set, keeps only projects with that featured flag.
	Featured *bool
	// Limit caps the result; <= 0 means no cap.
	Limit int
}

// Store provides read access to the portfolio content.
type Store interface {
	Profile(ctx context.Context) model.Profile

	// Projects returns projects matching f in data file order.
	Projects(ctx context.Context, f Filter) ([]model.Project, error)

	// Project returns the project with the given id.
	// Returns ErrNotFound if the id is unknown.
	Project(ctx context.Context, id string) (model.Project, error)

	// Categories returns distinct project categories in first-seen order.
	Categories(ctx context.Context) []string

	Experience(ctx context.Context) []model.Experience

	ResumeURL(ctx context.Context) string

	// Count returns the number of projects loaded.
	Count(ctx context.Context) int
}
