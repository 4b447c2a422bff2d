package api

import (
	"net/http"
)

// SkillsHandler serves the aggregated skill inventory.
type SkillsHandler struct {
	deps SkillsProvider
}

// NewSkillsHandler creates a new skills handler.
func NewSkillsHandler(deps SkillsProvider) *SkillsHandler {
	return &SkillsHandler{deps: deps}
}

// HandleGetSkills handles GET /api/skills requests.
func (h *SkillsHandler) HandleGetSkills(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(h.deps.Skills(r.Context())))
}

// HandleGetSkillStats handles GET /api/skills/stats requests.
func (h *SkillsHandler) HandleGetSkillStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.SkillStats(r.Context()))
}
