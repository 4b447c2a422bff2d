package repository

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/okian/portfolio/internal/domain/model"
	"github.com/okian/portfolio/pkg/metrics"
)

// Data file names looked up in the data directory and the embedded copy.
const (
	ProjectsFile   = "projects.json"
	ProfileFile    = "profile.json"
	ExperienceFile = "experience.json"
)

//go:embed data/*.json
var embeddedData embed.FS

// StaticStore is an immutable in-memory Store. Safe for concurrent use.
type StaticStore struct {
	profile    model.Profile
	projects   []model.Project
	byID       map[string]int
	categories []string
	experience []model.Experience
}

type loader struct {
	fsys   fs.FS
	source string
}

// Load builds a StaticStore. Each file is read from the configured
// directory when present there, otherwise from the embedded data set.
func Load(ctx context.Context, opts ...Option) (*StaticStore, error) {
	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}

	var (
		profile    model.Profile
		projects   []model.Project
		experience []model.Experience
	)
	if err := l.decode(ctx, ProfileFile, &profile); err != nil {
		return nil, err
	}
	if err := l.decode(ctx, ProjectsFile, &projects); err != nil {
		return nil, err
	}
	if err := l.decode(ctx, ExperienceFile, &experience); err != nil {
		return nil, err
	}

	s := New(profile, projects, experience)
	metrics.UpdateProjectsLoaded(len(s.projects))
	return s, nil
}

func (l *loader) decode(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoad, name, err)
	}

	var (
		b   []byte
		err error
	)
	if l.fsys != nil {
		b, err = fs.ReadFile(l.fsys, name)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: read %s from %s: %w", ErrLoad, name, l.source, err)
		}
	}
	if l.fsys == nil || err != nil {
		b, err = embeddedData.ReadFile("data/" + name)
		if err != nil {
			return fmt.Errorf("%w: read embedded %s: %w", ErrLoad, name, err)
		}
	}

	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrLoad, name, err)
	}
	return nil
}

// ReadProjects decodes a projects.json document.
func ReadProjects(r io.Reader) ([]model.Project, error) {
	var projects []model.Project
	if err := json.NewDecoder(r).Decode(&projects); err != nil {
		return nil, fmt.Errorf("%w: decode projects: %w", ErrLoad, err)
	}
	return projects, nil
}

// New builds a StaticStore from already decoded content.
func New(profile model.Profile, projects []model.Project, experience []model.Experience) *StaticStore {
	s := &StaticStore{
		profile:    profile,
		projects:   append([]model.Project(nil), projects...),
		byID:       make(map[string]int, len(projects)),
		experience: append([]model.Experience(nil), experience...),
	}

	seenCategory := make(map[string]struct{})
	for i, p := range s.projects {
		if _, dup := s.byID[p.ID]; !dup && p.ID != "" {
			s.byID[p.ID] = i
		}
		if _, dup := seenCategory[p.Category]; !dup {
			seenCategory[p.Category] = struct{}{}
			s.categories = append(s.categories, p.Category)
		}
	}
	return s
}

func (s *StaticStore) Profile(_ context.Context) model.Profile {
	return s.profile
}

func (s *StaticStore) Projects(_ context.Context, f Filter) ([]model.Project, error) {
	if f.Limit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, f.Limit)
	}

	out := make([]model.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if f.Featured != nil && p.Featured != *f.Featured {
			continue
		}
		out = append(out, p)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (s *StaticStore) Project(_ context.Context, id string) (model.Project, error) {
	i, ok := s.byID[id]
	if !ok {
		return model.Project{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return s.projects[i], nil
}

func (s *StaticStore) Categories(_ context.Context) []string {
	return append([]string(nil), s.categories...)
}

func (s *StaticStore) Experience(_ context.Context) []model.Experience {
	return append([]model.Experience(nil), s.experience...)
}

func (s *StaticStore) ResumeURL(_ context.Context) string {
	return s.profile.Resume
}

func (s *StaticStore) Count(_ context.Context) int {
	return len(s.projects)
}

// All returns every project in data file order.
func (s *StaticStore) All() []model.Project {
	return append([]model.Project(nil), s.projects...)
}

var _ Store = (*StaticStore)(nil)
