package smoke

import (
	"fmt"

	"github.com/okian/portfolio/internal/domain/skills"
	"github.com/okian/portfolio/internal/domain/types"
)

// compareSkills lists the differences between the published inventory and
// the one computed locally from the published projects.
func compareSkills(got []types.SkillCategory, want []skills.Category) []string {
	var diffs []string
	if len(got) != len(want) {
		diffs = append(diffs, fmt.Sprintf("category count: got %d, want %d", len(got), len(want)))
	}

	for i := 0; i < len(got) && i < len(want); i++ {
		g, w := got[i], want[i]
		if g.Category != w.Name {
			diffs = append(diffs, fmt.Sprintf("category %d: got %q, want %q", i, g.Category, w.Name))
			continue
		}
		if len(g.Skills) != len(w.Skills) {
			diffs = append(diffs, fmt.Sprintf("%s: got %d skills, want %d", w.Name, len(g.Skills), len(w.Skills)))
			continue
		}
		for j := range g.Skills {
			gs, ws := g.Skills[j], w.Skills[j]
			if gs.Name != ws.Name || gs.Level != ws.Level.String() || gs.ProjectCount != ws.ProjectCount {
				diffs = append(diffs, fmt.Sprintf("%s #%d: got %s/%s/%d, want %s/%s/%d",
					w.Name, j, gs.Name, gs.Level, gs.ProjectCount, ws.Name, ws.Level, ws.ProjectCount))
			}
		}
	}
	return diffs
}

// compareStats checks the clock-independent figures.
func compareStats(got types.SkillStats, want skills.Stats) []string {
	var diffs []string
	if got.ProjectsCompleted != want.ProjectsCompleted {
		diffs = append(diffs, fmt.Sprintf("projectsCompleted: got %q, want %q", got.ProjectsCompleted, want.ProjectsCompleted))
	}
	if got.Technologies != want.Technologies {
		diffs = append(diffs, fmt.Sprintf("technologies: got %q, want %q", got.Technologies, want.Technologies))
	}
	if got.ClientSatisfaction != want.ClientSatisfaction {
		diffs = append(diffs, fmt.Sprintf("clientSatisfaction: got %q, want %q", got.ClientSatisfaction, want.ClientSatisfaction))
	}
	return diffs
}
