package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/SergeyKozhin/events-assistant/internal/model"
)

// Backend persists the serialized event collection as a single document.
type Backend interface {
	// Read returns nil, nil when nothing has been stored yet.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the stored document as one atomic unit.
	Write(ctx context.Context, data []byte) error
}

// MutateFunc receives the current collection and returns the collection to
// store. Returning save == false leaves the stored document untouched.
type MutateFunc func(events []*model.Event) (updated []*model.Event, save bool, err error)

// Store owns the event collection. Every load-mutate-save cycle runs under
// one lock, so concurrent callers cannot overwrite each other's changes.
type Store struct {
	backend Backend
	mu      sync.Mutex
}

func New(backend Backend) *Store {
	return &Store{backend: backend}
}

func (s *Store) LoadAll(ctx context.Context) ([]*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

func (s *Store) SaveAll(ctx context.Context, events []*model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(ctx, events)
}

func (s *Store) Update(ctx context.Context, fn MutateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.load(ctx)
	if err != nil {
		return err
	}

	updated, save, err := fn(events)
	if err != nil {
		return err
	}
	if !save {
		return nil
	}

	return s.save(ctx, updated)
}

func (s *Store) load(ctx context.Context) ([]*model.Event, error) {
	data, err := s.backend.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read events: %v", model.ErrStorage, err)
	}

	events, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStorage, err)
	}

	return events, nil
}

func (s *Store) save(ctx context.Context, events []*model.Event) error {
	data, err := Encode(events)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrStorage, err)
	}

	if err := s.backend.Write(ctx, data); err != nil {
		return fmt.Errorf("%w: write events: %v", model.ErrStorage, err)
	}

	return nil
}
