package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/portfolio/internal/adapters/repository"
	service "github.com/okian/portfolio/internal/app"
	"github.com/okian/portfolio/internal/domain/model"
	"github.com/okian/portfolio/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

var refNow = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return refNow }

func testStore() *repository.StaticStore {
	projects := []model.Project{
		{
			ID: "1", Title: "Shop", Category: "Web", Featured: true,
			Technologies: []string{"React", "Node.js"},
			CreatedAt:    model.MustTimestamp("2022-05-01"),
			UpdatedAt:    model.MustTimestamp("2025-03-01"),
		},
		{
			ID: "2", Title: "Ledger", Category: "Data",
			Technologies: []string{"React", " PostgreSQL "},
			CreatedAt:    model.MustTimestamp("2021-03-01"),
			UpdatedAt:    model.MustTimestamp("2023-01-01"),
		},
	}
	return repository.New(model.Profile{Name: "Tester", Resume: "/cv.pdf"}, projects, nil)
}

// recordingSender is a configured mail.Sender that remembers what it sent.
type recordingSender struct {
	mu   sync.Mutex
	sent []model.ContactMessage
	err  error
}

func (r *recordingSender) Configured() bool { return true }

func (r *recordingSender) Send(_ context.Context, msg model.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestService_Start(t *testing.T) {
	Convey("Given a service without a store or sender", t, func() {
		svc := service.New()
		ctx := context.Background()
		defer func() { _ = svc.Stop(ctx) }()

		Convey("When starting it", func() {
			err := svc.Start(ctx)

			Convey("Then the embedded content is loaded", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["projects"], ShouldBeGreaterThan, 0)
				So(svc.Profile(ctx).Name, ShouldNotBeEmpty)
			})

			Convey("Then contact delivery is disabled", func() {
				So(svc.ContactEnabled(), ShouldBeFalse)
				So(errors.Is(svc.Enqueue(ctx, model.ContactMessage{ID: "x"}), service.ErrContactDisabled), ShouldBeTrue)
			})

			Convey("Then starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})
	})

	Convey("Given a service whose data directory holds a malformed file", t, func() {
		dir := t.TempDir()
		So(writeFile(dir, repository.ProjectsFile, "{not json"), ShouldBeNil)
		svc := service.New(service.WithLoadOptions(repository.WithDataDir(dir)))

		Convey("Then Start fails with ErrStart", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, service.ErrStart), ShouldBeTrue)
			So(errors.Is(err, repository.ErrLoad), ShouldBeTrue)
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithStore(testStore()), service.WithSender(&recordingSender{}))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When stopping the service", func() {
			err := svc.Stop(ctx)

			Convey("Then it is marked as stopped", func() {
				So(err, ShouldBeNil)
				So(svc.GetStats()["started"], ShouldEqual, false)
				So(svc.ContactEnabled(), ShouldBeFalse)
			})

			Convey("Then new submissions are refused", func() {
				So(errors.Is(svc.Enqueue(ctx, model.ContactMessage{ID: "late"}), service.ErrNotStarted), ShouldBeTrue)
			})

			Convey("Then stopping again is a no-op", func() {
				So(svc.Stop(ctx), ShouldBeNil)
			})
		})
	})
}

func TestService_Content(t *testing.T) {
	Convey("Given a service over a known store", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithStore(testStore()), service.WithClock(fixedClock))
		So(svc.Start(ctx), ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()

		Convey("Then content calls pass through to the store", func() {
			So(svc.Profile(ctx).Name, ShouldEqual, "Tester")
			So(svc.ResumeURL(ctx), ShouldEqual, "/cv.pdf")
			So(svc.ProjectCategories(ctx), ShouldResemble, []string{"Web", "Data"})
			So(svc.Experience(ctx), ShouldBeEmpty)

			p, err := svc.Project(ctx, "2")
			So(err, ShouldBeNil)
			So(p.Title, ShouldEqual, "Ledger")

			_, err = svc.Project(ctx, "9")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

			featured := true
			list, err := svc.Projects(ctx, repository.Filter{Featured: &featured})
			So(err, ShouldBeNil)
			So(list, ShouldHaveLength, 1)
		})

		Convey("When requesting skills", func() {
			cats := svc.Skills(ctx)

			Convey("Then categories follow the preferred order with levels by name", func() {
				So(cats, ShouldHaveLength, 3)
				So(cats[0].Category, ShouldEqual, "Frontend Development")
				So(cats[0].Skills[0].Name, ShouldEqual, "React")
				So(cats[0].Skills[0].Level, ShouldEqual, "Expert")
				So(cats[0].Skills[0].ProjectCount, ShouldEqual, 2)

				So(cats[1].Category, ShouldEqual, "Backend Development")
				So(cats[1].Skills[0].Level, ShouldEqual, "Advanced")

				So(cats[2].Category, ShouldEqual, "Databases")
				So(cats[2].Skills[0].Name, ShouldEqual, "PostgreSQL")
				So(cats[2].Skills[0].Level, ShouldEqual, "Beginner")
			})
		})

		Convey("When requesting stats", func() {
			stats := svc.SkillStats(ctx)

			Convey("Then they are computed against the injected clock", func() {
				So(stats.YearsExperience, ShouldEqual, "4+")
				So(stats.ProjectsCompleted, ShouldEqual, "2+")
				So(stats.Technologies, ShouldEqual, "3+")
				So(stats.ClientSatisfaction, ShouldEqual, "99%")
			})
		})
	})

	Convey("Given a service over an empty store", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithStore(repository.New(model.Profile{}, nil, nil)))

		Convey("Then skills are empty and stats fall back to defaults", func() {
			So(svc.Skills(ctx), ShouldBeEmpty)
			stats := svc.SkillStats(ctx)
			So(stats.YearsExperience, ShouldEqual, "3+")
			So(stats.ProjectsCompleted, ShouldEqual, "0")
			So(stats.Technologies, ShouldEqual, "0")
		})
	})
}

func TestService_Contact(t *testing.T) {
	Convey("Given a started service with a working sender", t, func() {
		ctx := context.Background()
		sender := &recordingSender{}
		svc := service.New(
			service.WithStore(testStore()),
			service.WithSender(sender),
			service.WithWorkerCount(1),
			service.WithDeliveryRetry(1, 0),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()

		Convey("When a message is enqueued", func() {
			So(svc.ContactEnabled(), ShouldBeTrue)
			So(svc.Enqueue(ctx, model.ContactMessage{ID: "m1", Key: "id:1"}), ShouldBeNil)

			Convey("Then a worker delivers it", func() {
				So(eventually(func() bool { return sender.count() == 1 }), ShouldBeTrue)
			})
		})

		Convey("When the same key is recorded twice", func() {
			first := svc.SeenAndRecord(ctx, "id:dup")
			second := svc.SeenAndRecord(ctx, "id:dup")

			Convey("Then only the first is new", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(svc.Size(), ShouldEqual, 1)
			})

			Convey("And unrecording frees it again", func() {
				svc.Unrecord(ctx, "id:dup")
				So(svc.SeenAndRecord(ctx, "id:dup"), ShouldBeFalse)
			})
		})
	})

	Convey("Given a started service whose sender always fails", t, func() {
		ctx := context.Background()
		sender := &recordingSender{err: errors.New("provider down")}
		svc := service.New(
			service.WithStore(testStore()),
			service.WithSender(sender),
			service.WithWorkerCount(1),
			service.WithDeliveryRetry(2, 0),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()

		Convey("When an accepted message cannot be delivered", func() {
			So(svc.SeenAndRecord(ctx, "id:lost"), ShouldBeFalse)
			So(svc.Enqueue(ctx, model.ContactMessage{ID: "m1", Key: "id:lost"}), ShouldBeNil)

			Convey("Then its key is forgotten so it can be resubmitted", func() {
				So(eventually(func() bool { return svc.Size() == 0 }), ShouldBeTrue)
			})
		})
	})
}

// slowSender takes delay per message and gives up when its context ends.
type slowSender struct {
	delay time.Duration
	mu    sync.Mutex
	sent  int
}

func (s *slowSender) Configured() bool { return true }

func (s *slowSender) Send(ctx context.Context, _ model.ContactMessage) error {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return ctx.Err()
	}
	s.mu.Lock()
	s.sent++
	s.mu.Unlock()
	return nil
}

func (s *slowSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent
}

func TestService_StopAfterSignal(t *testing.T) {
	Convey("Given a started service with a backlog of accepted messages", t, func() {
		sender := &slowSender{delay: 20 * time.Millisecond}
		svc := service.New(
			service.WithStore(testStore()),
			service.WithSender(sender),
			service.WithWorkerCount(1),
			service.WithDeliveryRetry(1, 0),
		)
		startCtx, cancelStart := context.WithCancel(context.Background())
		So(svc.Start(startCtx), ShouldBeNil)

		for i := 0; i < 10; i++ {
			key := fmt.Sprintf("id:backlog-%d", i)
			So(svc.SeenAndRecord(context.Background(), key), ShouldBeFalse)
			So(svc.Enqueue(context.Background(), model.ContactMessage{ID: key, Key: key}), ShouldBeNil)
		}
		cancelStart()

		Convey("When it is stopped with enough time", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			err := svc.Stop(ctx)

			Convey("Then the whole backlog is delivered", func() {
				So(err, ShouldBeNil)
				So(sender.count(), ShouldEqual, 10)
				So(svc.Size(), ShouldEqual, 10)
			})
		})

		Convey("When it is stopped with too little time", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
			defer cancel()
			err := svc.Stop(ctx)

			Convey("Then only delivered submissions stay recorded", func() {
				So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
				So(sender.count(), ShouldBeLessThan, 10)
				So(eventually(func() bool { return svc.Size() == int64(sender.count()) }), ShouldBeTrue)
			})
		})
	})
}
