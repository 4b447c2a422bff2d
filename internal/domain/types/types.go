// Package types contains the read shapes returned by the HTTP API.
package types

// Skill is one technology in a skill category.
type Skill struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Level        string `json:"level"`
	ProjectCount int    `json:"projectCount"`
}

// SkillCategory groups skills under a category heading.
type SkillCategory struct {
	Category string  `json:"category"`
	Skills   []Skill `json:"skills"`
}

// SkillStats are the headline numbers shown next to the skills section.
type SkillStats struct {
	YearsExperience    string `json:"yearsExperience"`
	ProjectsCompleted  string `json:"projectsCompleted"`
	Technologies       string `json:"technologies"`
	ClientSatisfaction string `json:"clientSatisfaction"`
}

// ContactAck acknowledges a contact form submission.
type ContactAck struct {
	Status    string `json:"status"`
	ID        string `json:"id,omitempty"`
	Duplicate bool   `json:"duplicate"`
}

// Health is the body of GET /healthz.
type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
