package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/db"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
	"github.com/gradnexus/campusconnect/internal/pkg/logger"
)

// EventRepository handles events and their registrations
type EventRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(database *db.PostgresDB) *EventRepository {
	return &EventRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// selectEvents projects events with registration counts. viewerID 0 means anonymous,
// which never matches a registration.
func (r *EventRepository) selectEvents(viewerID int64) squirrel.SelectBuilder {
	return r.sb.Select(
		"e.id", "e.title", "e.description",
		"to_char(e.event_date, 'YYYY-MM-DD')", "to_char(e.event_time, 'HH24:MI:SS')",
		"e.location", "e.type", "e.organizer_id", "u.username", "e.created_at",
		"(SELECT COUNT(*) FROM event_registrations er WHERE er.event_id = e.id)",
	).
		Column(squirrel.Expr(
			"EXISTS(SELECT 1 FROM event_registrations er WHERE er.event_id = e.id AND er.user_id = ?)", viewerID)).
		From("events e").
		Join("users u ON u.id = e.organizer_id")
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Location, &e.Type,
		&e.OrganizerID, &e.OrganizerName, &e.CreatedAt, &e.ParticipantsCount, &e.IsRegistered)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns all events, most recent date first.
func (r *EventRepository) List(ctx context.Context, viewerID int64) ([]*models.Event, error) {
	sql, args, err := r.selectEvents(viewerID).OrderBy("e.event_date DESC", "e.event_time DESC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list events SQL")
		return nil, fmt.Errorf("failed to build list events query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetByID retrieves one event as seen by viewerID.
func (r *EventRepository) GetByID(ctx context.Context, id, viewerID int64) (*models.Event, error) {
	sql, args, err := r.selectEvents(viewerID).Where(squirrel.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get event query: %w", err)
	}

	e, err := scanEvent(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}
	return e, nil
}

// Create inserts event and fills its id and created_at.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	sql, args, err := r.sb.Insert("events").
		Columns("title", "description", "event_date", "event_time", "location", "type", "organizer_id").
		Values(event.Title, event.Description, event.Date, event.Time, event.Location, event.Type, event.OrganizerID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create event SQL")
		return fmt.Errorf("failed to build create event query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&event.ID, &event.CreatedAt); err != nil {
		return fmt.Errorf("error creating event: %w", err)
	}
	return nil
}

// Update replaces the editable fields of an event. The organizer never changes.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	sql, args, err := r.sb.Update("events").
		Set("title", event.Title).
		Set("description", event.Description).
		Set("event_date", event.Date).
		Set("event_time", event.Time).
		Set("location", event.Location).
		Set("type", event.Type).
		Where(squirrel.Eq{"id": event.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update event query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// Delete deletes an event by ID
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("events").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete event query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// ToggleRegistration flips the registration of userID for eventID and reports whether
// the user is registered afterwards.
func (r *EventRepository) ToggleRegistration(ctx context.Context, eventID, userID int64) (bool, error) {
	sql, args, err := r.sb.Delete("event_registrations").
		Where(squirrel.Eq{"event_id": eventID, "user_id": userID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build unregister query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error unregistering from event: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	sql, args, err = r.sb.Insert("event_registrations").
		Columns("event_id", "user_id").
		Values(eventID, userID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build register query: %w", err)
	}
	if _, err := r.db.Conn(ctx).Exec(ctx, sql, args...); err != nil {
		return false, fmt.Errorf("error registering for event: %w", err)
	}
	return true, nil
}

// ListParticipants returns the users registered for eventID in registration order.
func (r *EventRepository) ListParticipants(ctx context.Context, eventID int64) ([]models.UserSummary, error) {
	sql, args, err := r.sb.Select("u.id", "u.username", "u.first_name", "u.last_name", "u.email").
		From("event_registrations er").
		Join("users u ON u.id = er.user_id").
		Where(squirrel.Eq{"er.event_id": eventID}).
		OrderBy("er.registered_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list participants query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing participants: %w", err)
	}
	defer rows.Close()

	participants := []models.UserSummary{}
	for rows.Next() {
		var p models.UserSummary
		if err := rows.Scan(&p.ID, &p.Username, &p.FirstName, &p.LastName, &p.Email); err != nil {
			return nil, fmt.Errorf("error scanning participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
