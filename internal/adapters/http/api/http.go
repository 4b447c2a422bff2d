// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/portfolio/internal/adapters/repository"
	"github.com/okian/portfolio/internal/domain/dedupe"
	"github.com/okian/portfolio/internal/domain/model"
	"github.com/okian/portfolio/internal/domain/types"
)

const defaultMaxProjectLimit = 100

// ContentProvider exposes the static portfolio content.
type ContentProvider interface {
	Profile(ctx context.Context) model.Profile
	Projects(ctx context.Context, f repository.Filter) ([]model.Project, error)
	Project(ctx context.Context, id string) (model.Project, error)
	ProjectCategories(ctx context.Context) []string
	Experience(ctx context.Context) []model.Experience
	ResumeURL(ctx context.Context) string
}

// SkillsProvider exposes the aggregated skill inventory.
type SkillsProvider interface {
	Skills(ctx context.Context) []types.SkillCategory
	SkillStats(ctx context.Context) types.SkillStats
}

// ContactDependencies accepts contact submissions for async delivery.
type ContactDependencies interface {
	dedupe.Deduper

	// Enqueue pushes a message for delivery. Returns an error on backpressure.
	Enqueue(ctx context.Context, msg model.ContactMessage) error

	// ContactEnabled reports whether a mail sender is configured.
	ContactEnabled() bool
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ContentProvider
	SkillsProvider
	ContactDependencies
	StatsProvider
}

// Server wires HTTP routes for the portfolio API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	profileHandler  *ProfileHandler
	projectsHandler *ProjectsHandler
	skillsHandler   *SkillsHandler
	contactHandler  *ContactHandler
}

// NewServer creates a new API server with all handlers. maxProjectLimit
// bounds the limit query parameter of the projects listing.
func NewServer(deps Dependencies, maxProjectLimit int) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(deps),
		profileHandler:  NewProfileHandler(deps),
		projectsHandler: NewProjectsHandler(deps, maxProjectLimit),
		skillsHandler:   NewSkillsHandler(deps),
		contactHandler:  NewContactHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("/api/profile", MetricsMiddleware(s.profileHandler.HandleGetProfile, "profile"))
	mux.HandleFunc("/api/experience", MetricsMiddleware(s.profileHandler.HandleGetExperience, "experience"))
	mux.HandleFunc("/api/resume", MetricsMiddleware(s.profileHandler.HandleGetResume, "resume"))

	mux.HandleFunc("/api/projects", MetricsMiddleware(s.projectsHandler.HandleListProjects, "projects"))
	mux.HandleFunc("/api/projects/categories", MetricsMiddleware(s.projectsHandler.HandleListCategories, "project_categories"))
	mux.HandleFunc("/api/projects/{id}", MetricsMiddleware(s.projectsHandler.HandleGetProject, "project"))

	mux.HandleFunc("/api/skills", MetricsMiddleware(s.skillsHandler.HandleGetSkills, "skills"))
	mux.HandleFunc("/api/skills/stats", MetricsMiddleware(s.skillsHandler.HandleGetSkillStats, "skill_stats"))

	mux.HandleFunc("/api/contact", MetricsMiddleware(s.contactHandler.HandlePostContact, "contact"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeUpstreamError maps store errors onto HTTP statuses.
func writeUpstreamError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", wrap(op, err))
	case errors.Is(err, repository.ErrInvalidLimit), errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", wrap(op, err))
	}
}
