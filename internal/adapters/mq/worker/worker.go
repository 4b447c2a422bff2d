package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/portfolio/internal/domain/model"
	"github.com/okian/portfolio/pkg/logger"
	"github.com/okian/portfolio/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = 500 * time.Millisecond
)

// Message is what workers read off the queue.
type Message = model.ContactMessage

// Sender delivers a message.
type Sender interface {
	Send(ctx context.Context, msg model.ContactMessage) error
}

// Queue defines how workers receive messages.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Message
}

// FailureHandler observes messages that could not be delivered.
type FailureHandler func(ctx context.Context, msg Message, err error)

// Worker delivers messages until its queue is closed.
type Worker interface {
	// Run blocks until the queue channel is closed or ctx is cancelled.
	Run(ctx context.Context)

	// Done is closed when Run returns.
	Done() <-chan struct{}
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue       Queue
	sender      Sender
	name        string
	maxAttempts int
	retryDelay  time.Duration
	onFailure   FailureHandler
	done        chan struct{}
	logger      logger.Logger
}

// NewInMemoryWorker creates a worker with configuration options.
func NewInMemoryWorker(q Queue, sender Sender, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:       q,
		sender:      sender,
		name:        "worker",
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
		done:        make(chan struct{}),
		logger:      logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run delivers messages until the queue channel closes, which drains
// whatever was buffered, or until ctx is cancelled.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	messages := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			metrics.RecordQueueDequeue()
			if err := w.deliver(ctx, msg); err != nil {
				w.logger.Error(ctx, "contact delivery failed",
					logger.String("message_id", msg.ID),
					logger.Error(err),
				)
			}
		}
	}
}

func (w *InMemoryWorker) Done() <-chan struct{} {
	return w.done
}

// deliver tries msg up to maxAttempts times with linear backoff.
func (w *InMemoryWorker) deliver(ctx context.Context, msg Message) error { //nolint:gocritic // hugeParam: received by value from the channel
	idle := metrics.WorkerBusy()
	defer idle()

	start := time.Now()
	var err error
	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		if err = w.sender.Send(ctx, msg); err == nil {
			metrics.RecordContactDelivered(float64(time.Since(start).Milliseconds()))
			w.logger.Info(ctx, "contact delivered",
				logger.String("message_id", msg.ID),
				logger.Int("attempt", attempt),
			)
			return nil
		}
		if attempt == w.maxAttempts || errors.Is(err, context.Canceled) {
			break
		}
		w.logger.Warn(ctx, "contact delivery attempt failed",
			logger.String("message_id", msg.ID),
			logger.Int("attempt", attempt),
			logger.Error(err),
		)
		if !w.sleep(ctx, time.Duration(attempt)*w.retryDelay) {
			err = errors.Join(err, ctx.Err())
			break
		}
	}

	metrics.RecordContactFailed(float64(time.Since(start).Milliseconds()))
	metrics.RecordErrorByComponent("worker", "delivery_error")
	if w.onFailure != nil {
		w.onFailure(ctx, msg, err)
	}
	return fmt.Errorf("deliver %s: %w", msg.ID, err)
}

// sleep waits for d and reports false if ctx ended first.
func (w *InMemoryWorker) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Pool manages multiple workers over one queue.
type Pool struct {
	workers   []*InMemoryWorker
	queue     Queue
	onFailure FailureHandler
	cancel    context.CancelFunc
	logger    logger.Logger
}

// NewPool creates a pool of workerCount workers sharing opts. A count below
// one uses runtime.NumCPU.
func NewPool(workerCount int, q Queue, sender Sender, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		workerOpts := append(append([]Option(nil), opts...), WithName("worker-"+strconv.Itoa(i)))
		p.workers[i] = NewInMemoryWorker(q, sender, workerOpts...)
	}
	p.onFailure = p.workers[0].onFailure
	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start runs every worker in its own goroutine. Cancelling ctx does not stop
// delivery; only Shutdown does.
func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(context.WithoutCancel(ctx))
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown closes the queue and waits for workers to drain it. If ctx ends
// first, in-flight deliveries are cancelled, messages still queued go to the
// failure handler with ErrAbandoned, and the context error is returned.
func (p *Pool) Shutdown(ctx context.Context) error {
	closed := false
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		} else {
			closed = true
		}
	}

	for i, w := range p.workers {
		select {
		case <-w.Done():
		case <-ctx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			if p.cancel != nil {
				p.cancel()
			}
			if closed {
				p.abandon(ctx)
			}
			return fmt.Errorf("shutdown timed out: %w", ctx.Err())
		}
	}
	if p.cancel != nil {
		p.cancel()
	}
	return nil
}

// abandon drains a closed queue, handing each message to the failure handler.
func (p *Pool) abandon(ctx context.Context) {
	n := 0
	for msg := range p.queue.Dequeue(ctx) {
		metrics.RecordQueueDequeue()
		metrics.RecordErrorByComponent("worker", "abandoned")
		if p.onFailure != nil {
			p.onFailure(ctx, msg, ErrAbandoned)
		}
		n++
	}
	if n > 0 {
		p.logger.Warn(ctx, "undelivered messages abandoned", logger.Int("count", n))
	}
}
