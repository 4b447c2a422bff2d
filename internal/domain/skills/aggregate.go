// Package skills derives a categorized skill list and summary statistics
// from a portfolio's project records.
//
// Every function here is pure: the caller supplies the reference time, and
// identical input yields identical output.
package skills

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/okian/portfolio/internal/domain/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ClientSatisfaction is the fixed satisfaction figure published in stats.
const ClientSatisfaction = "99%"

const yearDuration = 365 * 24 * time.Hour

// Usage is how often one technology appears across the project list.
type Usage struct {
	Name     string
	Count    int
	Projects []model.Project
}

// Skill is a technology with its estimated level.
type Skill struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Level        Level  `json:"level"`
	ProjectCount int    `json:"projectCount"`
}

// Category groups skills under one category name.
type Category struct {
	Name   string  `json:"category"`
	Skills []Skill `json:"skills"`
}

// Stats is the portfolio summary, already formatted for display.
type Stats struct {
	YearsExperience    string `json:"yearsExperience"`
	ProjectsCompleted  string `json:"projectsCompleted"`
	Technologies       string `json:"technologies"`
	ClientSatisfaction string `json:"clientSatisfaction"`
}

// Result bundles one aggregation run.
type Result struct {
	Categories   []Category `json:"categories"`
	Stats        Stats      `json:"stats"`
	Technologies int        `json:"technologies"`
}

// DefaultStats is what an empty portfolio reports.
func DefaultStats() Stats {
	return Stats{
		YearsExperience:    "3+",
		ProjectsCompleted:  "0",
		Technologies:       "0",
		ClientSatisfaction: ClientSatisfaction,
	}
}

// CountUsage tallies technologies in first-seen order. Names are trimmed;
// blank names are skipped, and a technology listed twice in one project
// counts once for that project.
func CountUsage(projects []model.Project) []Usage {
	index := make(map[string]int)
	var usages []Usage

	for _, p := range projects {
		seen := make(map[string]struct{}, len(p.Technologies))
		for _, raw := range p.Technologies {
			name := strings.TrimSpace(raw)
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}

			i, ok := index[name]
			if !ok {
				i = len(usages)
				index[name] = i
				usages = append(usages, Usage{Name: name})
			}
			usages[i].Count++
			usages[i].Projects = append(usages[i].Projects, p)
		}
	}
	return usages
}

// GroupSkills categorizes and ranks every technology in projects.
// Categories come out in PreferredOrder, unknown ones after, and empty
// categories are omitted.
func GroupSkills(projects []model.Project, now time.Time) []Category {
	return groupUsages(CountUsage(projects), len(projects), now)
}

func groupUsages(usages []Usage, total int, now time.Time) []Category {
	if len(usages) == 0 {
		return []Category{}
	}

	byName := make(map[string]int)
	var groups []Category
	for _, u := range usages {
		name := Categorize(u.Name)
		i, ok := byName[name]
		if !ok {
			i = len(groups)
			byName[name] = i
			groups = append(groups, Category{Name: name})
		}
		groups[i].Skills = append(groups[i].Skills, Skill{
			Name:         u.Name,
			Category:     name,
			Level:        EstimateLevel(u.Count, total, u.Projects, now),
			ProjectCount: u.Count,
		})
	}

	for i := range groups {
		skills := groups[i].Skills
		sort.SliceStable(skills, func(a, b int) bool {
			if skills[a].Level != skills[b].Level {
				return skills[a].Level > skills[b].Level
			}
			return skills[a].ProjectCount > skills[b].ProjectCount
		})
	}

	sortCategories(groups)
	return groups
}

// sortCategories orders groups by PreferredOrder and then alphabetically.
func sortCategories(groups []Category) {
	rank := make(map[string]int, len(PreferredOrder))
	for i, name := range PreferredOrder {
		rank[name] = i
	}
	// Collators keep internal buffers and are not safe to share.
	col := collate.New(language.English)

	sort.SliceStable(groups, func(a, b int) bool {
		ra, aKnown := rank[groups[a].Name]
		rb, bKnown := rank[groups[b].Name]
		switch {
		case aKnown && bKnown:
			return ra < rb
		case aKnown != bKnown:
			return aKnown
		default:
			return col.CompareString(groups[a].Name, groups[b].Name) < 0
		}
	})
}

// CalculateStats summarizes projects relative to now.
func CalculateStats(projects []model.Project, now time.Time) Stats {
	if len(projects) == 0 {
		return DefaultStats()
	}

	earliest := now
	distinct := make(map[string]struct{})
	for _, p := range projects {
		if first := activityOrDefault(p.FirstActivity()); first.Before(earliest) {
			earliest = first
		}
		for _, raw := range p.Technologies {
			if name := strings.TrimSpace(raw); name != "" {
				distinct[name] = struct{}{}
			}
		}
	}

	years := int(now.Sub(earliest) / yearDuration)
	if years < 1 {
		years = 1
	}

	return Stats{
		YearsExperience:    fmt.Sprintf("%d+", years),
		ProjectsCompleted:  fmt.Sprintf("%d+", len(projects)),
		Technologies:       fmt.Sprintf("%d+", len(distinct)),
		ClientSatisfaction: ClientSatisfaction,
	}
}

// Aggregate runs the grouping and the stats over the same input. Every
// non-blank technology name lands in exactly one category; blank names are
// dropped and do not count toward the stats.
func Aggregate(projects []model.Project, now time.Time) Result {
	usages := CountUsage(projects)
	return Result{
		Categories:   groupUsages(usages, len(projects), now),
		Stats:        CalculateStats(projects, now),
		Technologies: len(usages),
	}
}
