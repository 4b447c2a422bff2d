package service

import (
	"time"

	"github.com/okian/portfolio/internal/adapters/mail"
	"github.com/okian/portfolio/internal/adapters/repository"
	"github.com/okian/portfolio/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of delivery workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the contact queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets how many submission keys are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore serves content from store instead of loading it on Start.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLoadOptions are passed to repository.Load when no store was given.
func WithLoadOptions(opts ...repository.Option) Option {
	return func(s *Service) {
		s.loadOpts = append(s.loadOpts, opts...)
	}
}

// WithSender sets the contact delivery backend. Without a configured
// sender the contact endpoint reports itself disabled.
func WithSender(sender mail.Sender) Option {
	return func(s *Service) {
		s.sender = sender
	}
}

// WithClock sets the time source used for skill recency and stats.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithDeliveryRetry sets how many times and how far apart each message is
// tried before giving up.
func WithDeliveryRetry(attempts int, delay time.Duration) Option {
	return func(s *Service) {
		if attempts > 0 {
			s.maxAttempts = attempts
		}
		if delay >= 0 {
			s.retryDelay = delay
		}
	}
}
