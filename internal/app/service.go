// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/portfolio/internal/adapters/mail"
	"github.com/okian/portfolio/internal/adapters/mq/queue"
	"github.com/okian/portfolio/internal/adapters/mq/worker"
	"github.com/okian/portfolio/internal/adapters/repository"
	"github.com/okian/portfolio/internal/domain/dedupe"
	"github.com/okian/portfolio/internal/domain/model"
	"github.com/okian/portfolio/internal/domain/skills"
	"github.com/okian/portfolio/internal/domain/types"
	"github.com/okian/portfolio/pkg/logger"
	"github.com/okian/portfolio/pkg/metrics"
)

// Default service configuration.
const (
	defaultWorkerCount = 2
	defaultQueueSize   = 1_000
	defaultDedupeSize  = 10_000
	defaultMaxAttempts = 3
	defaultRetryDelay  = 500 * time.Millisecond
)

// Service implements the API dependencies for the portfolio.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	loadOpts   []repository.Option
	aggregator *skills.Aggregator
	deduper    dedupe.Deduper
	queue      *queue.InMemoryQueue
	sender     mail.Sender
	pool       *worker.Pool

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int
	maxAttempts int
	retryDelay  time.Duration
	clock       func() time.Time

	started bool
	logger  logger.Logger
}

// New constructs a Service. Content is loaded and workers started by Start.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: defaultWorkerCount,
		queueSize:   defaultQueueSize,
		dedupeSize:  defaultDedupeSize,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.aggregator = skills.NewAggregator(skills.WithClock(s.clock))
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	return s
}

// Start loads content, when no store was supplied, and starts the delivery
// workers when a sender is configured.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting portfolio service...")

	if s.store == nil {
		store, err := repository.Load(ctx, s.loadOpts...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStart, err)
		}
		s.store = store
	}

	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	if s.contactEnabled() {
		s.pool = worker.NewPool(s.workerCount, s.queue, s.sender,
			worker.WithLogger(s.logger),
			worker.WithMaxAttempts(s.maxAttempts),
			worker.WithRetryDelay(s.retryDelay),
			worker.WithFailureHandler(s.onDeliveryFailure),
		)
		s.pool.Start(ctx)
	} else {
		s.logger.Warn(ctx, "contact delivery not configured, contact form disabled")
	}

	s.started = true
	s.logger.Info(ctx, "portfolio service started",
		logger.Int("projects", s.store.Count(ctx)),
		logger.Bool("contact_enabled", s.pool != nil),
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop closes the contact queue and waits for queued messages to be
// delivered, or for ctx to end. Messages left undelivered when ctx ends are
// un-recorded so the visitor can resubmit them.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping portfolio service...")

	var err error
	if s.pool != nil {
		err = s.pool.Shutdown(ctx)
		s.pool = nil
	}
	if s.queue != nil {
		_ = s.queue.Close()
	}

	s.started = false
	s.logger.Info(ctx, "portfolio service stopped")
	return err
}

// onDeliveryFailure forgets the submission so the visitor can send it again.
func (s *Service) onDeliveryFailure(ctx context.Context, msg model.ContactMessage, err error) { //nolint:gocritic // hugeParam: matches worker.FailureHandler
	s.logger.Error(ctx, "contact message dropped",
		logger.String("message_id", msg.ID),
		logger.Error(err),
	)
	if msg.Key != "" {
		s.deduper.Unrecord(ctx, msg.Key)
	}
}

func (s *Service) content() repository.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return repository.New(model.Profile{}, nil, nil)
	}
	return s.store
}

// Profile returns the owner profile.
func (s *Service) Profile(ctx context.Context) model.Profile {
	return s.content().Profile(ctx)
}

// Projects returns projects matching f.
func (s *Service) Projects(ctx context.Context, f repository.Filter) ([]model.Project, error) {
	return s.content().Projects(ctx, f)
}

// Project returns one project by id.
func (s *Service) Project(ctx context.Context, id string) (model.Project, error) {
	return s.content().Project(ctx, id)
}

// ProjectCategories returns the distinct project categories.
func (s *Service) ProjectCategories(ctx context.Context) []string {
	return s.content().Categories(ctx)
}

// Experience returns the work history.
func (s *Service) Experience(ctx context.Context) []model.Experience {
	return s.content().Experience(ctx)
}

// ResumeURL returns the resume link, or "" when there is none.
func (s *Service) ResumeURL(ctx context.Context) string {
	return s.content().ResumeURL(ctx)
}

// aggregate runs the skill aggregation over every project.
func (s *Service) aggregate(ctx context.Context) skills.Result {
	projects, err := s.content().Projects(ctx, repository.Filter{})
	if err != nil {
		s.logger.Error(ctx, "listing projects for aggregation", logger.Error(err))
		metrics.RecordErrorByComponent("service", "aggregation_input")
	}

	start := time.Now()
	result := s.aggregator.Aggregate(projects)
	metrics.RecordAggregation(float64(time.Since(start).Microseconds())/1000, result.Technologies, len(result.Categories))
	return result
}

// Skills returns the skill inventory grouped by category.
func (s *Service) Skills(ctx context.Context) []types.SkillCategory {
	return toSkillCategories(s.aggregate(ctx).Categories)
}

// SkillStats returns the headline statistics.
func (s *Service) SkillStats(ctx context.Context) types.SkillStats {
	st := s.aggregate(ctx).Stats
	return types.SkillStats{
		YearsExperience:    st.YearsExperience,
		ProjectsCompleted:  st.ProjectsCompleted,
		Technologies:       st.Technologies,
		ClientSatisfaction: st.ClientSatisfaction,
	}
}

func toSkillCategories(cats []skills.Category) []types.SkillCategory {
	out := make([]types.SkillCategory, len(cats))
	for i, c := range cats {
		skillList := make([]types.Skill, len(c.Skills))
		for j, sk := range c.Skills {
			skillList[j] = types.Skill{
				Name:         sk.Name,
				Category:     sk.Category,
				Level:        sk.Level.String(),
				ProjectCount: sk.ProjectCount,
			}
		}
		out[i] = types.SkillCategory{Category: c.Name, Skills: skillList}
	}
	return out
}

// SeenAndRecord atomically checks if a submission key was seen and records
// it if not.
func (s *Service) SeenAndRecord(ctx context.Context, key string) bool {
	return s.deduper.SeenAndRecord(ctx, key)
}

// Unrecord forgets a submission key, allowing it to be retried.
func (s *Service) Unrecord(ctx context.Context, key string) {
	s.deduper.Unrecord(ctx, key)
}

// Size returns the current number of remembered submission keys.
func (s *Service) Size() int64 {
	return s.deduper.Size()
}

// ContactEnabled reports whether submissions can be delivered.
func (s *Service) ContactEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started && s.pool != nil
}

func (s *Service) contactEnabled() bool {
	return s.sender != nil && s.sender.Configured()
}

// Enqueue submits a contact message for asynchronous delivery.
func (s *Service) Enqueue(ctx context.Context, msg model.ContactMessage) error { //nolint:gocritic // hugeParam: matches api.ContactDependencies
	s.mu.RLock()
	q, started, enabled := s.queue, s.started, s.pool != nil
	s.mu.RUnlock()

	switch {
	case !started:
		return ErrNotStarted
	case !enabled:
		return ErrContactDisabled
	}

	if err := q.Enqueue(ctx, msg); err != nil {
		s.logger.Warn(ctx, "contact message rejected",
			logger.String("message_id", msg.ID),
			logger.Error(err),
		)
		return fmt.Errorf("enqueue %s: %w", msg.ID, err)
	}
	s.logger.Debug(ctx, "contact message queued", logger.String("message_id", msg.ID))
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":        s.started,
		"workerCount":    s.workerCount,
		"queueSize":      s.queueSize,
		"dedupeSize":     s.dedupeSize,
		"dedupeEntries":  s.deduper.Size(),
		"contactEnabled": s.started && s.pool != nil,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		projects := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["projects"] = projects

		metrics.UpdateQueue(queueLen, s.queue.Capacity())
		metrics.UpdateProjectsLoaded(projects)
	}
	return stats
}
