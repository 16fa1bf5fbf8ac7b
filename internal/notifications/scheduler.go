package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SergeyKozhin/events-assistant/internal/model"
	"github.com/SergeyKozhin/events-assistant/internal/store"
	"go.uber.org/zap"
)

// Scheduler scans the collection once per interval and announces events
// that entered a reminder window.
type Scheduler struct {
	store    eventStore
	notifier Notifier
	logger   *zap.SugaredLogger
	interval time.Duration
	now      func() time.Time

	// A Stop that sees running waits on done; a Start that sees stopped
	// never ticks.
	mu      sync.Mutex
	running bool
	stopped bool
	stop    chan struct{}
	done    chan struct{}
}

type eventStore interface {
	Update(ctx context.Context, fn store.MutateFunc) error
}

type Notifier interface {
	Announce(ctx context.Context, event *model.Event, prefix string) error
}

func NewScheduler(
	store eventStore,
	notifier Notifier,
	logger *zap.SugaredLogger,
	interval time.Duration,
) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	if interval >= 2*reminderTolerance {
		logger.Warnw("reminder interval is wider than the reminder window, reminders may be missed",
			"interval", interval, "window", 2*reminderTolerance)
	}

	return &Scheduler{
		store:    store,
		notifier: notifier,
		logger:   logger,
		interval: interval,
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs ticks until Stop is called or ctx is done. The first tick runs
// immediately, the following ones on interval boundaries. Start returns at
// once when Stop was already called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.stopped || s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()
	defer close(s.done)

	s.tick(ctx)

	now := s.now()
	timer := time.NewTimer(now.Truncate(s.interval).Add(s.interval).Sub(now))
	select {
	case <-s.stop:
		timer.Stop()
		return
	case <-ctx.Done():
		timer.Stop()
		return
	case <-timer.C:
		s.tick(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// Stop prevents further ticks and waits for a running one to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		close(s.stop)
	}
	running := s.running
	s.mu.Unlock()

	if running {
		<-s.done
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	select {
	case <-s.stop:
		return
	default:
	}

	// a tick that has begun runs to completion even during shutdown
	ctx = context.WithoutCancel(ctx)

	if _, err := s.Tick(ctx, s.now()); err != nil {
		s.logger.Errorw("reminder tick failed", "err", err)
	}
}

type dueReminder struct {
	event    *model.Event
	reminder reminder
}

// Tick marks and announces every reminder due at now. Flags are persisted
// before any announcement is sent, so a reminder is never sent twice; a
// failed announcement is logged and not retried. It returns the number of
// reminders that were marked.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) (int, error) {
	var due []dueReminder

	err := s.store.Update(ctx, func(events []*model.Event) ([]*model.Event, bool, error) {
		due = nil
		for _, e := range events {
			if e.Cancelled {
				continue
			}

			delta := e.Start.Sub(now)
			for _, r := range reminders {
				if r.sent(e) || !r.due(delta) {
					continue
				}
				r.mark(e)
				due = append(due, dueReminder{event: e.Clone(), reminder: r})
			}
		}

		return events, len(due) > 0, nil
	})
	if err != nil {
		return 0, fmt.Errorf("store.Update: %w", err)
	}

	for _, d := range due {
		s.logger.Infow("sending reminder", "event_id", d.event.ID, "reminder", d.reminder.name)
		if err := s.notifier.Announce(ctx, d.event, d.reminder.prefix); err != nil {
			s.logger.Errorw("failed to send reminder",
				"event_id", d.event.ID,
				"reminder", d.reminder.name,
				"err", err,
			)
		}
	}

	return len(due), nil
}
