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
	"github.com/gradnexus/campusconnect/internal/pkg/dberrors"
	"github.com/gradnexus/campusconnect/internal/pkg/logger"
)

// RequestFilter scopes a request listing to one side. Zero fields are ignored.
type RequestFilter struct {
	StudentID int64
	AlumniID  int64
}

// MentorshipRequestRepository handles mentorship requests and their requested types
type MentorshipRequestRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewMentorshipRequestRepository creates a new MentorshipRequestRepository
func NewMentorshipRequestRepository(database *db.PostgresDB) *MentorshipRequestRepository {
	return &MentorshipRequestRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts the request and links its mentorship types.
func (r *MentorshipRequestRepository) Create(ctx context.Context, req *models.MentorshipRequest, typeIDs []int64) error {
	sql, args, err := r.sb.Insert("mentorship_requests").
		Columns("student_id", "alumni_id", "message", "status").
		Values(req.StudentID, req.AlumniID, req.Message, req.Status).
		Suffix("RETURNING id, requested_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create mentorship request SQL")
		return fmt.Errorf("failed to build create mentorship request query: %w", err)
	}

	conn := r.db.Conn(ctx)
	if err := conn.QueryRow(ctx, sql, args...).Scan(&req.ID, &req.RequestedAt, &req.UpdatedAt); err != nil {
		return fmt.Errorf("error creating mentorship request: %w", err)
	}

	if len(typeIDs) == 0 {
		return nil
	}
	ins := r.sb.Insert("mentorship_request_types").Columns("mentorship_request_id", "mentorship_type_id")
	for _, id := range typeIDs {
		ins = ins.Values(req.ID, id)
	}
	sql, args, err = ins.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build link mentorship types query: %w", err)
	}
	if _, err := conn.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewValidationError("Validation failed", map[string]string{
				"mentorship_types": "Invalid mentorship type id.",
			})
		}
		return fmt.Errorf("error linking mentorship types: %w", err)
	}
	return nil
}

func (r *MentorshipRequestRepository) selectRequests() squirrel.SelectBuilder {
	return r.sb.Select(
		"mr.id", "mr.student_id", "mr.alumni_id", "mr.message", "mr.status", "mr.requested_at", "mr.updated_at",
		"s.id", "s.username", "s.first_name", "s.last_name", "s.email", "s.degree", "s.image",
		"a.id", "a.username", "a.first_name", "a.last_name", "a.email", "a.degree", "a.image",
		"ap.current_company", "ap.job_title",
	).
		From("mentorship_requests mr").
		Join("users s ON s.id = mr.student_id").
		Join("users a ON a.id = mr.alumni_id").
		LeftJoin("alumni_profiles ap ON ap.user_id = mr.alumni_id")
}

func scanRequest(row pgx.Row) (*models.MentorshipRequest, error) {
	req := models.MentorshipRequest{
		Student:         &models.RequestParty{},
		Alumni:          &models.RequestParty{},
		MentorshipTypes: []models.MentorshipType{},
	}
	s, a := req.Student, req.Alumni
	err := row.Scan(
		&req.ID, &req.StudentID, &req.AlumniID, &req.Message, &req.Status, &req.RequestedAt, &req.UpdatedAt,
		&s.ID, &s.Username, &s.FirstName, &s.LastName, &s.Email, &s.Degree, &s.Image,
		&a.ID, &a.Username, &a.FirstName, &a.LastName, &a.Email, &a.Degree, &a.Image,
		&a.Company, &a.JobTitle,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetByID loads a request with both parties and its mentorship types.
func (r *MentorshipRequestRepository) GetByID(ctx context.Context, id int64) (*models.MentorshipRequest, error) {
	sql, args, err := r.selectRequests().Where(squirrel.Eq{"mr.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get mentorship request query: %w", err)
	}

	req, err := scanRequest(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving mentorship request: %w", err)
	}

	if err := r.attachTypes(ctx, []*models.MentorshipRequest{req}); err != nil {
		return nil, err
	}
	return req, nil
}

// List returns the requests matching filter, newest first.
func (r *MentorshipRequestRepository) List(ctx context.Context, filter RequestFilter) ([]*models.MentorshipRequest, error) {
	q := r.selectRequests().OrderBy("mr.requested_at DESC", "mr.id DESC")
	if filter.StudentID != 0 {
		q = q.Where(squirrel.Eq{"mr.student_id": filter.StudentID})
	}
	if filter.AlumniID != 0 {
		q = q.Where(squirrel.Eq{"mr.alumni_id": filter.AlumniID})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list mentorship requests query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing mentorship requests: %w", err)
	}
	defer rows.Close()

	reqs := []*models.MentorshipRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning mentorship request: %w", err)
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachTypes(ctx, reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *MentorshipRequestRepository) attachTypes(ctx context.Context, reqs []*models.MentorshipRequest) error {
	if len(reqs) == 0 {
		return nil
	}
	byID := make(map[int64]*models.MentorshipRequest, len(reqs))
	ids := make([]int64, 0, len(reqs))
	for _, req := range reqs {
		byID[req.ID] = req
		ids = append(ids, req.ID)
	}

	sql, args, err := r.sb.Select("mrt.mentorship_request_id", "mt.id", "mt.name").
		From("mentorship_request_types mrt").
		Join("mentorship_types mt ON mt.id = mrt.mentorship_type_id").
		Where(squirrel.Eq{"mrt.mentorship_request_id": ids}).
		OrderBy("mt.name").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build request types query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error loading request types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var reqID int64
		var t models.MentorshipType
		if err := rows.Scan(&reqID, &t.ID, &t.Name); err != nil {
			return fmt.Errorf("error scanning request type: %w", err)
		}
		req := byID[reqID]
		req.MentorshipTypes = append(req.MentorshipTypes, t)
	}
	return rows.Err()
}

// UpdateStatusIfPending moves a pending request to status. It reports false when the
// request was no longer pending, so two concurrent transitions cannot both succeed.
func (r *MentorshipRequestRepository) UpdateStatusIfPending(ctx context.Context, id int64, status models.RequestStatus) (bool, error) {
	sql, args, err := r.sb.Update("mentorship_requests").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": models.RequestPending}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build update request status query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error updating request status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// StatusCounts aggregates the requests received by alumniID and their completed activities.
func (r *MentorshipRequestRepository) StatusCounts(ctx context.Context, alumniID int64) (*models.RequestStatusCounts, error) {
	sql, args, err := r.sb.Select(
		"COUNT(DISTINCT mr.student_id) FILTER (WHERE mr.status = 'accepted')",
		"COUNT(*) FILTER (WHERE mr.status = 'accepted')",
		"COUNT(*) FILTER (WHERE mr.status <> 'cancelled')",
	).
		Column(squirrel.Expr(`(SELECT COUNT(*) FROM mentorship_activities ma
			JOIN mentorship_requests r2 ON r2.id = ma.mentorship_request_id
			WHERE r2.alumni_id = ? AND ma.status = 'completed')`, alumniID)).
		From("mentorship_requests mr").
		Where(squirrel.Eq{"mr.alumni_id": alumniID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build request stats query: %w", err)
	}

	var c models.RequestStatusCounts
	err = r.db.Conn(ctx).QueryRow(ctx, sql, args...).
		Scan(&c.DistinctAcceptedStudents, &c.Accepted, &c.NonCancelled, &c.CompletedActivities)
	if err != nil {
		return nil, fmt.Errorf("error computing request stats: %w", err)
	}
	return &c, nil
}
