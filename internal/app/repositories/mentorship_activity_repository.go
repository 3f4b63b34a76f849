package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/db"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
	"github.com/gradnexus/campusconnect/internal/pkg/dberrors"
)

// ActivityFilter selects activities visible to ParticipantID. RequestID and Status
// narrow the result when non-zero.
type ActivityFilter struct {
	ParticipantID int64
	RequestID     int64
	Status        models.ActivityStatus
}

// MentorshipActivityRepository handles the activity ledger of mentorship requests
type MentorshipActivityRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewMentorshipActivityRepository creates a new MentorshipActivityRepository
func NewMentorshipActivityRepository(database *db.PostgresDB) *MentorshipActivityRepository {
	return &MentorshipActivityRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts an activity and fills its id and timestamps.
func (r *MentorshipActivityRepository) Create(ctx context.Context, a *models.MentorshipActivity) error {
	sql, args, err := r.sb.Insert("mentorship_activities").
		Columns("mentorship_request_id", "title", "description", "status", "activity_date", "file", "meeting_link").
		Values(a.MentorshipRequestID, a.Title, a.Description, a.Status, a.Date, a.File, a.MeetingLink).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create activity query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrRequestNotFound
		}
		return fmt.Errorf("error creating activity: %w", err)
	}
	return nil
}

func scanActivity(row pgx.Row) (*models.MentorshipActivity, error) {
	var a models.MentorshipActivity
	err := row.Scan(&a.ID, &a.MentorshipRequestID, &a.Title, &a.Description, &a.Status, &a.Date,
		&a.File, &a.MeetingLink, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns the activities matching filter, newest first.
func (r *MentorshipActivityRepository) List(ctx context.Context, filter ActivityFilter) ([]*models.MentorshipActivity, error) {
	q := r.sb.Select(
		"ma.id", "ma.mentorship_request_id", "ma.title", "ma.description", "ma.status", "ma.activity_date",
		"ma.file", "ma.meeting_link", "ma.created_at", "ma.updated_at",
	).
		From("mentorship_activities ma").
		Join("mentorship_requests mr ON mr.id = ma.mentorship_request_id").
		Where(squirrel.Or{
			squirrel.Eq{"mr.student_id": filter.ParticipantID},
			squirrel.Eq{"mr.alumni_id": filter.ParticipantID},
		}).
		OrderBy("ma.created_at DESC", "ma.id DESC")
	if filter.RequestID != 0 {
		q = q.Where(squirrel.Eq{"ma.mentorship_request_id": filter.RequestID})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"ma.status": filter.Status})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list activities query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing activities: %w", err)
	}
	defer rows.Close()

	activities := []*models.MentorshipActivity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
