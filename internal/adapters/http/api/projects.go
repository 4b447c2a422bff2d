package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/okian/portfolio/internal/adapters/repository"
)

// ProjectsHandler serves project listings and single projects.
type ProjectsHandler struct {
	deps     ContentProvider
	maxLimit int
}

// NewProjectsHandler creates a new projects handler. A maxLimit below one
// falls back to 100.
func NewProjectsHandler(deps ContentProvider, maxLimit int) *ProjectsHandler {
	if maxLimit < 1 {
		maxLimit = defaultMaxProjectLimit
	}
	return &ProjectsHandler{deps: deps, maxLimit: maxLimit}
}

// HandleListProjects handles GET /api/projects?category=&featured=&limit=.
func (h *ProjectsHandler) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_projects"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	filter := repository.Filter{Category: q.Get("category")}

	if raw := q.Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, errors.New("featured must be true or false")))
			return
		}
		filter.Featured = &featured
	}

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, errors.New("limit must be a positive integer")))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", newKind(op, ErrBadRequest))
			return
		}
		filter.Limit = n
	}

	projects, err := h.deps.Projects(r.Context(), filter)
	if err != nil {
		writeUpstreamError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(projects))
}

// HandleListCategories handles GET /api/projects/categories requests.
func (h *ProjectsHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(h.deps.ProjectCategories(r.Context())))
}

// HandleGetProject handles GET /api/projects/{id} requests.
func (h *ProjectsHandler) HandleGetProject(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_project"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", newKind(op, ErrBadRequest))
		return
	}
	project, err := h.deps.Project(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}
