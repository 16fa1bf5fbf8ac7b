package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/events-assistant/internal/model"
)

func (s *Service) CreateEvent(ctx context.Context, info *model.EventCreate) (*model.Event, error) {
	if err := validateCreate(info); err != nil {
		return nil, err
	}

	var created *model.Event
	err := s.store.Update(ctx, func(events []*model.Event) ([]*model.Event, bool, error) {
		created = &model.Event{
			ID:        nextID(events),
			Positions: map[string]string{},
			EventCreate: model.EventCreate{
				Name:        info.Name,
				Description: info.Description,
				Start:       info.Start.UTC(),
				End:         info.End.UTC(),
			},
		}

		return append(events, created), true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("store.Update: %w", err)
	}

	return created.Clone(), nil
}
