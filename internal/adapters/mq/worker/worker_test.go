package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/portfolio/internal/adapters/mq/queue"
	"github.com/okian/portfolio/internal/adapters/mq/worker"
	"github.com/okian/portfolio/internal/domain/model"
	logging "github.com/okian/portfolio/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

// mockSender records deliveries and fails the first failures[id] attempts.
type mockSender struct {
	mu        sync.Mutex
	delivered []string
	attempts  map[string]int
	failures  map[string]int
}

func newMockSender() *mockSender {
	return &mockSender{attempts: map[string]int{}, failures: map[string]int{}}
}

func (s *mockSender) Send(_ context.Context, msg model.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[msg.ID]++
	if s.attempts[msg.ID] <= s.failures[msg.ID] {
		return errors.New("provider unavailable")
	}
	s.delivered = append(s.delivered, msg.ID)
	return nil
}

func (s *mockSender) failFirst(id string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[id] = n
}

func (s *mockSender) snapshot() ([]string, map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attempts := make(map[string]int, len(s.attempts))
	for k, v := range s.attempts {
		attempts[k] = v
	}
	return append([]string(nil), s.delivered...), attempts
}

func waitDone(w worker.Worker) bool {
	select {
	case <-w.Done():
		return true
	case <-time.After(time.Second):
		return false
	}
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a worker over a queue", t, func() {
		_ = logging.Init()

		q := queue.NewInMemoryQueue(queue.WithCapacity(10))
		sender := newMockSender()
		var failedMu sync.Mutex
		var failed []string

		w := worker.NewInMemoryWorker(q, sender,
			worker.WithName("test-worker"),
			worker.WithMaxAttempts(3),
			worker.WithRetryDelay(0),
			worker.WithFailureHandler(func(_ context.Context, msg model.ContactMessage, _ error) {
				failedMu.Lock()
				failed = append(failed, msg.ID)
				failedMu.Unlock()
			}),
		)

		convey.Convey("When messages are queued and the queue is closed", func() {
			ctx := context.Background()
			_ = q.Enqueue(ctx, model.ContactMessage{ID: "ok"})
			_ = q.Enqueue(ctx, model.ContactMessage{ID: "flaky"})
			_ = q.Enqueue(ctx, model.ContactMessage{ID: "broken"})
			sender.failFirst("flaky", 2)
			sender.failFirst("broken", 10)
			_ = q.Close()

			go w.Run(ctx)
			stopped := waitDone(w)

			convey.Convey("Then it drains the queue and retries transient failures", func() {
				convey.So(stopped, convey.ShouldBeTrue)
				delivered, attempts := sender.snapshot()
				convey.So(delivered, convey.ShouldResemble, []string{"ok", "flaky"})
				convey.So(attempts["flaky"], convey.ShouldEqual, 3)
				convey.So(attempts["broken"], convey.ShouldEqual, 3)
			})

			convey.Convey("Then exhausted messages reach the failure handler", func() {
				failedMu.Lock()
				defer failedMu.Unlock()
				convey.So(failed, convey.ShouldResemble, []string{"broken"})
			})
		})

		convey.Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			go w.Run(ctx)
			cancel()

			convey.Convey("Then the worker stops without the queue closing", func() {
				convey.So(waitDone(w), convey.ShouldBeTrue)
				convey.So(q.IsClosed(), convey.ShouldBeFalse)
			})
		})
	})
}

func TestWorkerPool(t *testing.T) {
	convey.Convey("Given a worker pool", t, func() {
		_ = logging.Init()

		q := queue.NewInMemoryQueue(queue.WithCapacity(100))
		sender := newMockSender()

		convey.Convey("When created with a non-positive count", func() {
			pool := worker.NewPool(0, q, sender)

			convey.Convey("Then it falls back to a positive size", func() {
				convey.So(pool.Size(), convey.ShouldBeGreaterThan, 0)
			})
		})

		convey.Convey("When started and shut down after enqueuing", func() {
			pool := worker.NewPool(3, q, sender, worker.WithRetryDelay(0))
			pool.Start(context.Background())

			for i := 0; i < 20; i++ {
				convey.So(q.Enqueue(context.Background(), model.ContactMessage{ID: fmt.Sprintf("m%d", i)}), convey.ShouldBeNil)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			err := pool.Shutdown(ctx)

			convey.Convey("Then every message is delivered before it returns", func() {
				convey.So(err, convey.ShouldBeNil)
				delivered, _ := sender.snapshot()
				convey.So(delivered, convey.ShouldHaveLength, 20)
				convey.So(q.IsClosed(), convey.ShouldBeTrue)
			})
		})
	})
}

// blockingSender blocks until its context ends.
type blockingSender struct{ started chan struct{} }

func (b blockingSender) Send(ctx context.Context, _ model.ContactMessage) error {
	select {
	case <-b.started:
	default:
		close(b.started)
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestWorkerPoolShutdownTimeout(t *testing.T) {
	convey.Convey("Given a pool stuck on a slow delivery", t, func() {
		_ = logging.Init()

		q := queue.NewInMemoryQueue(queue.WithCapacity(1))
		sender := blockingSender{started: make(chan struct{})}
		pool := worker.NewPool(1, q, sender, worker.WithMaxAttempts(1))
		pool.Start(context.Background())
		convey.So(q.Enqueue(context.Background(), model.ContactMessage{ID: "slow"}), convey.ShouldBeNil)
		<-sender.started

		convey.Convey("When shutdown runs out of time", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()
			err := pool.Shutdown(ctx)

			convey.Convey("Then it reports the timeout", func() {
				convey.So(errors.Is(err, context.DeadlineExceeded), convey.ShouldBeTrue)
			})
		})
	})
}

func TestWorkerPoolOutlivesStartContext(t *testing.T) {
	convey.Convey("Given a pool started on a context that is then cancelled", t, func() {
		_ = logging.Init()

		q := queue.NewInMemoryQueue(queue.WithCapacity(10))
		sender := newMockSender()
		pool := worker.NewPool(1, q, sender, worker.WithRetryDelay(0))

		startCtx, cancelStart := context.WithCancel(context.Background())
		pool.Start(startCtx)
		for i := 0; i < 5; i++ {
			convey.So(q.Enqueue(context.Background(), model.ContactMessage{ID: fmt.Sprintf("m%d", i)}), convey.ShouldBeNil)
		}
		cancelStart()

		convey.Convey("When the pool is shut down", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			err := pool.Shutdown(ctx)

			convey.Convey("Then every queued message is still delivered", func() {
				convey.So(err, convey.ShouldBeNil)
				delivered, _ := sender.snapshot()
				convey.So(delivered, convey.ShouldHaveLength, 5)
			})
		})
	})
}

// stuckSender ignores its context until released.
type stuckSender struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *stuckSender) Send(_ context.Context, _ model.ContactMessage) error {
	s.once.Do(func() { close(s.started) })
	<-s.release
	return errors.New("released")
}

func TestWorkerPoolShutdownAbandonsQueued(t *testing.T) {
	convey.Convey("Given a pool stuck on a delivery with more messages queued", t, func() {
		_ = logging.Init()

		var mu sync.Mutex
		failed := map[string]error{}
		q := queue.NewInMemoryQueue(queue.WithCapacity(5))
		sender := &stuckSender{started: make(chan struct{}), release: make(chan struct{})}
		defer close(sender.release)
		pool := worker.NewPool(1, q, sender,
			worker.WithMaxAttempts(1),
			worker.WithFailureHandler(func(_ context.Context, msg model.ContactMessage, err error) {
				mu.Lock()
				failed[msg.ID] = err
				mu.Unlock()
			}),
		)
		pool.Start(context.Background())
		convey.So(q.Enqueue(context.Background(), model.ContactMessage{ID: "stuck"}), convey.ShouldBeNil)
		<-sender.started
		convey.So(q.Enqueue(context.Background(), model.ContactMessage{ID: "waiting-1"}), convey.ShouldBeNil)
		convey.So(q.Enqueue(context.Background(), model.ContactMessage{ID: "waiting-2"}), convey.ShouldBeNil)

		convey.Convey("When shutdown runs out of time", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()
			err := pool.Shutdown(ctx)

			convey.Convey("Then queued messages reach the failure handler as abandoned", func() {
				convey.So(errors.Is(err, context.DeadlineExceeded), convey.ShouldBeTrue)
				mu.Lock()
				defer mu.Unlock()
				convey.So(errors.Is(failed["waiting-1"], worker.ErrAbandoned), convey.ShouldBeTrue)
				convey.So(errors.Is(failed["waiting-2"], worker.ErrAbandoned), convey.ShouldBeTrue)
				convey.So(q.Len(context.Background()), convey.ShouldEqual, 0)
			})
		})
	})
}
