package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/events-assistant/internal/model"
)

// CancelEvent hides the event from listings and reminders without removing it.
func (s *Service) CancelEvent(ctx context.Context, id int64) (*model.Event, error) {
	return s.updateEvent(ctx, id, func(e *model.Event) {
		e.Cancelled = true
	})
}

// SetPosition assigns participant to position, replacing any previous holder.
func (s *Service) SetPosition(ctx context.Context, id int64, position, participant string) (*model.Event, error) {
	if position == "" {
		return nil, fmt.Errorf("%w: position must be provided", model.ErrValidation)
	}

	return s.updateEvent(ctx, id, func(e *model.Event) {
		if e.Positions == nil {
			e.Positions = map[string]string{}
		}
		e.Positions[position] = participant
	})
}

// SetAnnouncement stores the roster message reference. An empty ref clears it.
func (s *Service) SetAnnouncement(ctx context.Context, id int64, ref string) (*model.Event, error) {
	return s.updateEvent(ctx, id, func(e *model.Event) {
		e.AnnouncementMessageID = ref
	})
}

func (s *Service) updateEvent(ctx context.Context, id int64, fn func(e *model.Event)) (*model.Event, error) {
	var updated *model.Event
	err := s.store.Update(ctx, func(events []*model.Event) ([]*model.Event, bool, error) {
		event := findEvent(events, id)
		if event == nil {
			return nil, false, model.ErrNoRecord
		}

		fn(event)
		updated = event.Clone()

		return events, true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("store.Update: %w", err)
	}

	return updated, nil
}
