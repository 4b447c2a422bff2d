// Package model contains domain models passed between layers.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Project is a portfolio project as stored in projects.json.
type Project struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	Category     string    `json:"category"`
	Domain       string    `json:"domain,omitempty"`
	Featured     bool      `json:"featured"`
	GithubURL    string    `json:"githubUrl,omitempty"`
	LiveURL      string    `json:"liveUrl,omitempty"`
	Images       []string  `json:"images,omitempty"`
	Stars        int       `json:"stars,omitempty"`
	Forks        int       `json:"forks,omitempty"`
	Language     string    `json:"language,omitempty"`
	CreatedAt    Timestamp `json:"createdAt"`
	UpdatedAt    Timestamp `json:"updatedAt"`
}

// rawProject accepts the key spellings found in exported data: numeric or
// string ids, snake_case timestamps and lastUpdated.
type rawProject struct {
	ID           json.RawMessage `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Technologies []string        `json:"technologies"`
	Category     string          `json:"category"`
	Domain       string          `json:"domain"`
	Featured     bool            `json:"featured"`
	GithubURL    string          `json:"githubUrl"`
	LiveURL      string          `json:"liveUrl"`
	Images       []string        `json:"images"`
	Stars        int             `json:"stars"`
	Forks        int             `json:"forks"`
	Language     string          `json:"language"`
	CreatedAt    Timestamp       `json:"createdAt"`
	CreatedAtAlt Timestamp       `json:"created_at"`
	UpdatedAt    Timestamp       `json:"updatedAt"`
	UpdatedAtAlt Timestamp       `json:"updated_at"`
	LastUpdated  Timestamp       `json:"lastUpdated"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Project) UnmarshalJSON(b []byte) error {
	var raw rawProject
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}
	*p = Project{
		ID:           id,
		Title:        raw.Title,
		Description:  raw.Description,
		Technologies: raw.Technologies,
		Category:     raw.Category,
		Domain:       raw.Domain,
		Featured:     raw.Featured,
		GithubURL:    raw.GithubURL,
		LiveURL:      raw.LiveURL,
		Images:       raw.Images,
		Stars:        raw.Stars,
		Forks:        raw.Forks,
		Language:     raw.Language,
		CreatedAt:    firstValid(raw.CreatedAt, raw.CreatedAtAlt),
		UpdatedAt:    firstValid(raw.UpdatedAt, raw.UpdatedAtAlt, raw.LastUpdated),
	}
	return nil
}

// LastActivity is UpdatedAt, falling back to CreatedAt. It may be absent.
func (p Project) LastActivity() Timestamp {
	return firstValid(p.UpdatedAt, p.CreatedAt)
}

// FirstActivity is CreatedAt, falling back to UpdatedAt. It may be absent.
func (p Project) FirstActivity() Timestamp {
	return firstValid(p.CreatedAt, p.UpdatedAt)
}

func firstValid(ts ...Timestamp) Timestamp {
	for _, t := range ts {
		if t.Valid() {
			return t
		}
	}
	return Timestamp{}
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("project id: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("project id: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}
