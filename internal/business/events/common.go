package events

import (
	"fmt"

	"github.com/SergeyKozhin/events-assistant/internal/model"
)

func validateCreate(info *model.EventCreate) error {
	switch {
	case info.Name == "":
		return fmt.Errorf("%w: name must be provided", model.ErrValidation)
	case info.Start.IsZero():
		return fmt.Errorf("%w: start must be provided", model.ErrValidation)
	case info.End.IsZero():
		return fmt.Errorf("%w: end must be provided", model.ErrValidation)
	case !info.End.After(info.Start):
		return fmt.Errorf("%w: end must be after start", model.ErrValidation)
	}

	return nil
}

func nextID(events []*model.Event) int64 {
	var max int64
	for _, e := range events {
		if e.ID > max {
			max = e.ID
		}
	}

	return max + 1
}

func findEvent(events []*model.Event, id int64) *model.Event {
	for _, e := range events {
		if e.ID == id {
			return e
		}
	}

	return nil
}
