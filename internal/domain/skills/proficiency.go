package skills

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/portfolio/internal/domain/model"
)

// Level is a heuristic proficiency ranking. Higher values rank higher.
type Level int

// Proficiency levels in ascending order.
const (
	Beginner Level = iota + 1
	Intermediate
	Advanced
	Expert
)

var levelNames = map[Level]string{
	Beginner:     "Beginner",
	Intermediate: "Intermediate",
	Advanced:     "Advanced",
	Expert:       "Expert",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) {
	if _, ok := levelNames[l]; !ok {
		return nil, fmt.Errorf("invalid level %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name, case-insensitively.
func (l *Level) UnmarshalText(b []byte) error {
	parsed, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	for lvl, name := range levelNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return lvl, nil
		}
	}
	return 0, fmt.Errorf("unknown proficiency level %q", s)
}

// Scoring weights. These are a heuristic, not a measurement; changing any of
// them changes every published level.
const (
	ratioHighPoints   = 40 // usage ratio >= 0.6
	ratioMidPoints    = 30 // usage ratio >= 0.4
	ratioLowPoints    = 20 // usage ratio >= 0.25
	ratioFloorPoints  = 10
	featuredPoints    = 25
	recentPoints      = 15
	manyProjectPoints = 20 // count >= 5
	someProjectPoints = 10 // count >= 3

	expertThreshold       = 80
	advancedThreshold     = 60
	intermediateThreshold = 40
)

// DefaultDate stands in for a project that carries no timestamp at all.
// Projects without dates therefore look older than a year once the clock
// passes 2025-01-01, and they pull the experience estimate back to 2024.
var DefaultDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Score is the additive proficiency score for a technology used in count of
// total projects, where projects are the ones that use it.
func Score(count, total int, projects []model.Project, now time.Time) int {
	score := ratioFloorPoints
	if total > 0 {
		ratio := float64(count) / float64(total)
		switch {
		case ratio >= 0.6:
			score = ratioHighPoints
		case ratio >= 0.4:
			score = ratioMidPoints
		case ratio >= 0.25:
			score = ratioLowPoints
		}
	}

	if anyFeatured(projects) {
		score += featuredPoints
	}
	if anyRecent(projects, now) {
		score += recentPoints
	}

	switch {
	case count >= 5:
		score += manyProjectPoints
	case count >= 3:
		score += someProjectPoints
	}
	return score
}

// LevelForScore maps a score to a level.
func LevelForScore(score int) Level {
	switch {
	case score >= expertThreshold:
		return Expert
	case score >= advancedThreshold:
		return Advanced
	case score >= intermediateThreshold:
		return Intermediate
	default:
		return Beginner
	}
}

// EstimateLevel is LevelForScore(Score(...)).
func EstimateLevel(count, total int, projects []model.Project, now time.Time) Level {
	return LevelForScore(Score(count, total, projects, now))
}

func anyFeatured(projects []model.Project) bool {
	for _, p := range projects {
		if p.Featured {
			return true
		}
	}
	return false
}

// anyRecent reports whether a project was touched after now minus one year.
func anyRecent(projects []model.Project, now time.Time) bool {
	cutoff := now.AddDate(-1, 0, 0)
	for _, p := range projects {
		if activityOrDefault(p.LastActivity()).After(cutoff) {
			return true
		}
	}
	return false
}

func activityOrDefault(ts model.Timestamp) time.Time {
	if ts.Valid() {
		return ts.Time
	}
	return DefaultDate
}
