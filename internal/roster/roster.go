// Package roster keeps the announcement channel's roster message for each
// event in line with the positions stored on the event.
//
// A roster message that was deleted from the channel is recreated: the stale
// reference is cleared and persisted first, then a new message is posted and
// its reference persisted.
package roster

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/SergeyKozhin/events-assistant/internal/model"
	"github.com/SergeyKozhin/events-assistant/internal/render"
	"go.uber.org/zap"
)

type Synchronizer struct {
	events    eventsService
	messenger messenger
	renderer  *render.Renderer
	logger    *zap.SugaredLogger
	prefix    string

	// mu serializes reconciliation so concurrent signups for an event
	// without a roster message cannot post two of them.
	mu sync.Mutex
}

type eventsService interface {
	GetAllEvents(ctx context.Context) ([]*model.Event, error)
	SetPosition(ctx context.Context, id int64, position, participant string) (*model.Event, error)
	SetAnnouncement(ctx context.Context, id int64, ref string) (*model.Event, error)
}

type messenger interface {
	SendMessage(ctx context.Context, m *render.Message) (string, error)
	EditMessage(ctx context.Context, ref string, m *render.Message) error
	FetchMessage(ctx context.Context, ref string) error
}

func NewSynchronizer(
	events eventsService,
	messenger messenger,
	renderer *render.Renderer,
	logger *zap.SugaredLogger,
	prefix string,
) *Synchronizer {
	return &Synchronizer{
		events:    events,
		messenger: messenger,
		renderer:  renderer,
		logger:    logger,
		prefix:    prefix,
	}
}

// Signup assigns participant to position and reconciles the roster message.
// The assignment is committed before the message is touched: a returned
// error wrapping model.ErrDelivery comes with the updated event.
func (s *Synchronizer) Signup(ctx context.Context, eventID int64, position, participant string) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.events.SetPosition(ctx, eventID, position, participant)
	if err != nil {
		return nil, fmt.Errorf("events.SetPosition: %w", err)
	}

	s.logger.Infow("signup", "event_id", eventID, "position", position, "participant", participant)

	return s.reconcile(ctx, event)
}

func (s *Synchronizer) reconcile(ctx context.Context, event *model.Event) (*model.Event, error) {
	msg := s.renderer.Roster(event, s.prefix)

	if event.AnnouncementMessageID != "" {
		err := s.messenger.EditMessage(ctx, event.AnnouncementMessageID, msg)
		if err == nil {
			return event, nil
		}
		if !errors.Is(err, model.ErrMessageNotFound) {
			return event, fmt.Errorf("messenger.EditMessage: %w", err)
		}

		s.logger.Infow("roster message is gone, recreating",
			"event_id", event.ID, "message_id", event.AnnouncementMessageID)

		event, err = s.events.SetAnnouncement(ctx, event.ID, "")
		if err != nil {
			return nil, fmt.Errorf("events.SetAnnouncement: %w", err)
		}
	}

	ref, err := s.messenger.SendMessage(ctx, msg)
	if err != nil {
		return event, fmt.Errorf("messenger.SendMessage: %w", err)
	}

	updated, err := s.events.SetAnnouncement(ctx, event.ID, ref)
	if err != nil {
		s.logger.Warnw("roster message posted but not recorded, it is orphaned",
			"event_id", event.ID, "message_id", ref, "err", err)
		return event, fmt.Errorf("events.SetAnnouncement: %w", err)
	}

	return updated, nil
}

// Sweep clears references to roster messages that no longer exist, so the
// next signup posts a fresh message. Cancelled events are swept too. It
// returns the number of cleared references.
func (s *Synchronizer) Sweep(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.events.GetAllEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("events.GetAllEvents: %w", err)
	}

	cleared := 0
	for _, e := range events {
		if e.AnnouncementMessageID == "" {
			continue
		}

		err := s.messenger.FetchMessage(ctx, e.AnnouncementMessageID)
		switch {
		case err == nil:
			continue
		case errors.Is(err, model.ErrMessageNotFound):
			if _, err := s.events.SetAnnouncement(ctx, e.ID, ""); err != nil {
				return cleared, fmt.Errorf("events.SetAnnouncement: %w", err)
			}
			cleared++
			s.logger.Infow("cleared stale roster reference", "event_id", e.ID, "message_id", e.AnnouncementMessageID)
		default:
			s.logger.Errorw("failed to fetch roster message", "event_id", e.ID, "err", err)
		}
	}

	return cleared, nil
}
