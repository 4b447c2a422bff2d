package api

import (
	"net/http"
)

// ProfileHandler serves the owner profile, work history and resume link.
type ProfileHandler struct {
	deps ContentProvider
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ContentProvider) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

// HandleGetProfile handles GET /api/profile requests.
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Profile(r.Context()))
}

// HandleGetExperience handles GET /api/experience requests.
func (h *ProfileHandler) HandleGetExperience(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(h.deps.Experience(r.Context())))
}

type resumeResponse struct {
	URL string `json:"url"`
}

// HandleGetResume handles GET /api/resume requests.
func (h *ProfileHandler) HandleGetResume(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_resume"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	url := h.deps.ResumeURL(r.Context())
	if url == "" {
		writeError(w, http.StatusNotFound, "not_found", newKind(op, ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, resumeResponse{URL: url})
}

// nonNil makes empty lists encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
