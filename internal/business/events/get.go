package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/events-assistant/internal/model"
)

func (s *Service) GetEventByID(ctx context.Context, id int64) (*model.Event, error) {
	events, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.LoadAll: %w", err)
	}

	event := findEvent(events, id)
	if event == nil {
		return nil, model.ErrNoRecord
	}

	return event, nil
}

// GetEvents returns every event that is not cancelled, in stored order.
func (s *Service) GetEvents(ctx context.Context) ([]*model.Event, error) {
	events, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.LoadAll: %w", err)
	}

	res := make([]*model.Event, 0, len(events))
	for _, e := range events {
		if !e.Cancelled {
			res = append(res, e)
		}
	}

	return res, nil
}

// GetAllEvents returns every stored event, cancelled ones included.
func (s *Service) GetAllEvents(ctx context.Context) ([]*model.Event, error) {
	events, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.LoadAll: %w", err)
	}

	return events, nil
}
