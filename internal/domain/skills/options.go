package skills

import (
	"time"

	"github.com/okian/portfolio/internal/domain/model"
)

// Aggregator binds the aggregation functions to a clock.
type Aggregator struct {
	clock func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock sets the time source used as "now".
func WithClock(clock func() time.Time) Option {
	return func(a *Aggregator) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// NewAggregator returns an Aggregator that reads the wall clock by default.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{clock: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Now returns the current reference time.
func (a *Aggregator) Now() time.Time {
	return a.clock()
}

// Aggregate runs Aggregate at the aggregator's current time.
func (a *Aggregator) Aggregate(projects []model.Project) Result {
	return Aggregate(projects, a.clock())
}

// Skills runs GroupSkills at the aggregator's current time.
func (a *Aggregator) Skills(projects []model.Project) []Category {
	return GroupSkills(projects, a.clock())
}

// Stats runs CalculateStats at the aggregator's current time.
func (a *Aggregator) Stats(projects []model.Project) Stats {
	return CalculateStats(projects, a.clock())
}
