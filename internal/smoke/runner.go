package smoke

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okian/portfolio/internal/domain/model"
	"github.com/okian/portfolio/internal/domain/skills"
	"github.com/okian/portfolio/internal/domain/types"
	"github.com/okian/portfolio/pkg/logger"
)

// Run executes the complete smoke check against cfg.BaseURL.
func Run(ctx context.Context, cfg Config) (Report, error) {
	cfg = cfg.withDefaults()
	log := logger.Get().Named("smoke")
	start := time.Now()
	report := Report{}

	log.Info(ctx, "starting smoke check",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("contacts", cfg.Contacts),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
	)

	c := newClient(cfg)

	// Step 1: Check service health
	var health types.Health
	if err := c.getJSON(ctx, "/healthz", &health); err != nil {
		return report, fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if health.Status != "ok" {
		return report, fmt.Errorf("%w: status %q", ErrUnhealthy, health.Status)
	}

	// Step 2: Fetch what the service publishes
	var (
		projects  []model.Project
		published []types.SkillCategory
		stats     types.SkillStats
	)
	for path, v := range map[string]any{
		"/api/projects":     &projects,
		"/api/skills":       &published,
		"/api/skills/stats": &stats,
	} {
		if err := c.getJSON(ctx, path, v); err != nil {
			return report, err
		}
	}

	// Step 3: Recompute locally and compare
	local := skills.Aggregate(projects, cfg.Now)
	report.Projects = len(projects)
	report.Categories = len(published)
	report.Technologies = stats.Technologies
	report.Mismatches = append(compareSkills(published, local.Categories), compareStats(stats, local.Stats)...)
	for _, m := range report.Mismatches {
		log.Warn(ctx, "skill inventory mismatch", logger.String("detail", m))
	}

	// Step 4: Contact form
	if cfg.Contacts > 0 {
		if err := checkContact(ctx, c, cfg, &report); err != nil {
			report.Duration = time.Since(start)
			return report, err
		}
		if report.ContactDisabled {
			log.Warn(ctx, "contact form disabled on target, skipped duplicate check")
		}
	}

	report.Duration = time.Since(start)
	log.Info(ctx, "smoke check finished",
		logger.Int("projects", report.Projects),
		logger.Int("categories", report.Categories),
		logger.Int("mismatches", len(report.Mismatches)),
		logger.Int("contactAccepted", report.ContactAccepted),
		logger.Duration("duration", report.Duration),
	)

	if len(report.Mismatches) > 0 {
		return report, fmt.Errorf("%w: %s", ErrMismatch, strings.Join(report.Mismatches, "; "))
	}
	return report, nil
}
