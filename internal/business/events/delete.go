package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/events-assistant/internal/model"
)

// DeleteEvent removes the event and reports whether it existed. Deleting an
// unknown id is not an error.
func (s *Service) DeleteEvent(ctx context.Context, id int64) (bool, error) {
	var removed bool
	err := s.store.Update(ctx, func(events []*model.Event) ([]*model.Event, bool, error) {
		res := events[:0]
		for _, e := range events {
			if e.ID == id {
				removed = true
				continue
			}
			res = append(res, e)
		}

		return res, true, nil
	})
	if err != nil {
		return false, fmt.Errorf("store.Update: %w", err)
	}

	return removed, nil
}
