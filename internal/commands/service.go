package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeyKozhin/events-assistant/internal/model"
	"go.uber.org/zap"
)

// Service is the platform independent command surface. Chat and HTTP
// adapters resolve the acting identity and call into it.
type Service struct {
	events    eventsService
	roster    rosterSynchronizer
	logger    *zap.SugaredLogger
	adminRole string
}

type eventsService interface {
	CreateEvent(ctx context.Context, info *model.EventCreate) (*model.Event, error)
	DeleteEvent(ctx context.Context, id int64) (bool, error)
	CancelEvent(ctx context.Context, id int64) (*model.Event, error)
	GetEventByID(ctx context.Context, id int64) (*model.Event, error)
	GetEvents(ctx context.Context) ([]*model.Event, error)
}

type rosterSynchronizer interface {
	Signup(ctx context.Context, eventID int64, position, participant string) (*model.Event, error)
}

func NewService(events eventsService, roster rosterSynchronizer, logger *zap.SugaredLogger, adminRole string) *Service {
	return &Service{
		events:    events,
		roster:    roster,
		logger:    logger,
		adminRole: adminRole,
	}
}

func (s *Service) ListEvents(ctx context.Context) ([]*model.Event, error) {
	events, err := s.events.GetEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("events.GetEvents: %w", err)
	}

	return events, nil
}

func (s *Service) GetEvent(ctx context.Context, id int64) (*model.Event, error) {
	event, err := s.events.GetEventByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("events.GetEventByID: %w", err)
	}

	return event, nil
}

// Authorize returns model.ErrForbidden unless who is an events admin.
func (s *Service) Authorize(who model.Identity) error {
	if !IsEventsAdmin(who, s.adminRole) {
		return model.ErrForbidden
	}

	return nil
}

func (s *Service) CreateEvent(ctx context.Context, who model.Identity, info *model.EventCreate) (*model.Event, error) {
	if err := s.Authorize(who); err != nil {
		return nil, err
	}

	event, err := s.events.CreateEvent(ctx, info)
	if err != nil {
		return nil, fmt.Errorf("events.CreateEvent: %w", err)
	}

	s.logger.Infow("event created", "event_id", event.ID, "name", event.Name, "by", who.ID)

	return event, nil
}

// DeleteEvent succeeds for unknown ids.
func (s *Service) DeleteEvent(ctx context.Context, who model.Identity, id int64) error {
	if err := s.Authorize(who); err != nil {
		return err
	}

	removed, err := s.events.DeleteEvent(ctx, id)
	if err != nil {
		return fmt.Errorf("events.DeleteEvent: %w", err)
	}

	s.logger.Infow("event deleted", "event_id", id, "existed", removed, "by", who.ID)

	return nil
}

func (s *Service) CancelEvent(ctx context.Context, who model.Identity, id int64) (*model.Event, error) {
	if err := s.Authorize(who); err != nil {
		return nil, err
	}

	event, err := s.events.CancelEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("events.CancelEvent: %w", err)
	}

	s.logger.Infow("event cancelled", "event_id", id, "by", who.ID)

	return event, nil
}

// Signup records who in position. A delivery failure while updating the
// roster message is returned together with the committed event.
func (s *Service) Signup(ctx context.Context, who model.Identity, eventID int64, position string) (*model.Event, error) {
	participant := who.DisplayName
	if participant == "" {
		participant = who.ID
	}

	event, err := s.roster.Signup(ctx, eventID, position, participant)
	if err != nil {
		if event != nil && errors.Is(err, model.ErrDelivery) {
			s.logger.Errorw("roster message not updated", "event_id", eventID, "err", err)
		}
		return event, fmt.Errorf("roster.Signup: %w", err)
	}

	return event, nil
}
