package events

import (
	"context"

	"github.com/SergeyKozhin/events-assistant/internal/model"
	"github.com/SergeyKozhin/events-assistant/internal/store"
)

type Service struct {
	store eventStore
}

type eventStore interface {
	LoadAll(ctx context.Context) ([]*model.Event, error)
	Update(ctx context.Context, fn store.MutateFunc) error
}

func NewService(store eventStore) *Service {
	return &Service{
		store: store,
	}
}
