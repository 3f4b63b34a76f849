package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gradnexus/campusconnect/internal/app/auth"
	"github.com/gradnexus/campusconnect/internal/app/models"
)

// EventService handles campus events and registrations.
type EventService interface {
	List(ctx context.Context, viewer *auth.Identity) ([]*models.Event, error)
	Get(ctx context.Context, viewer *auth.Identity, id int64) (*models.Event, error)
	Create(ctx context.Context, actor *auth.Identity, event *models.Event) (*models.Event, error)
	Update(ctx context.Context, actor *auth.Identity, id int64, event *models.Event) (*models.Event, error)
	Delete(ctx context.Context, actor *auth.Identity, id int64) error
	ToggleRegistration(ctx context.Context, actor *auth.Identity, id int64) (bool, error)
}

type eventServiceImpl struct {
	events EventStore
	logger zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(events EventStore, logger zerolog.Logger) EventService {
	return &eventServiceImpl{events: events, logger: logger}
}

func viewerID(viewer *auth.Identity) int64 {
	if viewer == nil {
		return 0
	}
	return viewer.UserID
}

// withParticipants attaches the registrant list when the viewer organizes the event.
func (s *eventServiceImpl) withParticipants(ctx context.Context, viewer *auth.Identity, e *models.Event) error {
	if viewer == nil || e.OrganizerID != viewer.UserID {
		return nil
	}
	participants, err := s.events.ListParticipants(ctx, e.ID)
	if err != nil {
		return err
	}
	e.Participants = participants
	return nil
}

func (s *eventServiceImpl) List(ctx context.Context, viewer *auth.Identity) ([]*models.Event, error) {
	events, err := s.events.List(ctx, viewerID(viewer))
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		if err := s.withParticipants(ctx, viewer, e); err != nil {
			return nil, err
		}
	}
	return events, nil
}

func (s *eventServiceImpl) Get(ctx context.Context, viewer *auth.Identity, id int64) (*models.Event, error) {
	e, err := s.events.GetByID(ctx, id, viewerID(viewer))
	if err != nil {
		return nil, err
	}
	if err := s.withParticipants(ctx, viewer, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Create stores an event organized by the caller.
func (s *eventServiceImpl) Create(ctx context.Context, actor *auth.Identity, event *models.Event) (*models.Event, error) {
	event.OrganizerID = actor.UserID
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("eventID", event.ID).Int64("organizerID", actor.UserID).Msg("Event created")
	return s.Get(ctx, actor, event.ID)
}

// Update replaces an event. Only its organizer may do so.
func (s *eventServiceImpl) Update(ctx context.Context, actor *auth.Identity, id int64, event *models.Event) (*models.Event, error) {
	existing, err := s.events.GetByID(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwner(actor, existing.OrganizerID, "Only the organizer can modify this event."); err != nil {
		return nil, err
	}

	event.ID = id
	event.OrganizerID = existing.OrganizerID
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return s.Get(ctx, actor, id)
}

func (s *eventServiceImpl) Delete(ctx context.Context, actor *auth.Identity, id int64) error {
	existing, err := s.events.GetByID(ctx, id, actor.UserID)
	if err != nil {
		return err
	}
	if err := auth.RequireOwner(actor, existing.OrganizerID, "Only the organizer can delete this event."); err != nil {
		return err
	}
	return s.events.Delete(ctx, id)
}

// ToggleRegistration flips the caller's registration and reports whether the caller
// is registered afterwards.
func (s *eventServiceImpl) ToggleRegistration(ctx context.Context, actor *auth.Identity, id int64) (bool, error) {
	if _, err := s.events.GetByID(ctx, id, actor.UserID); err != nil {
		return false, err
	}
	return s.events.ToggleRegistration(ctx, id, actor.UserID)
}
