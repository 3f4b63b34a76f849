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
)

// ReferralFilter scopes a referral listing. StudentID selects the requests a student
// sent; PosterID selects the requests made for jobs posted by that user.
type ReferralFilter struct {
	StudentID int64
	PosterID  int64
}

// ReferralRepository handles referral requests
type ReferralRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewReferralRepository creates a new ReferralRepository
func NewReferralRepository(database *db.PostgresDB) *ReferralRepository {
	return &ReferralRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ReferralRepository) selectReferrals() squirrel.SelectBuilder {
	return r.sb.Select(
		"rr.id", "rr.job_id", "rr.student_id", "rr.message", "rr.resume", "rr.status", "rr.requested_at",
		"s.username", "s.first_name", "s.last_name", "j.title", "j.company", "j.posted_by",
	).
		From("referral_requests rr").
		Join("users s ON s.id = rr.student_id").
		Join("jobs j ON j.id = rr.job_id")
}

func scanReferral(row pgx.Row) (*models.ReferralRequest, error) {
	var rr models.ReferralRequest
	var first, last string
	err := row.Scan(&rr.ID, &rr.JobID, &rr.StudentID, &rr.Message, &rr.Resume, &rr.Status, &rr.RequestedAt,
		&rr.StudentName, &first, &last, &rr.JobTitle, &rr.Company, &rr.JobPostedBy)
	if err != nil {
		return nil, err
	}
	rr.StudentFullName = (&models.User{FirstName: first, LastName: last}).FullName()
	return &rr, nil
}

// Create inserts a referral request and fills its id and requested_at.
func (r *ReferralRepository) Create(ctx context.Context, rr *models.ReferralRequest) error {
	sql, args, err := r.sb.Insert("referral_requests").
		Columns("job_id", "student_id", "message", "resume", "status").
		Values(rr.JobID, rr.StudentID, rr.Message, rr.Resume, rr.Status).
		Suffix("RETURNING id, requested_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create referral query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&rr.ID, &rr.RequestedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrJobNotFound
		}
		return fmt.Errorf("error creating referral: %w", err)
	}
	return nil
}

// GetByID retrieves a referral request by ID
func (r *ReferralRepository) GetByID(ctx context.Context, id int64) (*models.ReferralRequest, error) {
	sql, args, err := r.selectReferrals().Where(squirrel.Eq{"rr.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get referral query: %w", err)
	}

	rr, err := scanReferral(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReferralNotFound
		}
		return nil, fmt.Errorf("error retrieving referral: %w", err)
	}
	return rr, nil
}

// List returns referral requests matching filter, newest first.
func (r *ReferralRepository) List(ctx context.Context, filter ReferralFilter) ([]*models.ReferralRequest, error) {
	q := r.selectReferrals().OrderBy("rr.requested_at DESC", "rr.id DESC")
	if filter.StudentID != 0 {
		q = q.Where(squirrel.Eq{"rr.student_id": filter.StudentID})
	}
	if filter.PosterID != 0 {
		q = q.Where(squirrel.Eq{"j.posted_by": filter.PosterID})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list referrals query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing referrals: %w", err)
	}
	defer rows.Close()

	out := []*models.ReferralRequest{}
	for rows.Next() {
		rr, err := scanReferral(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning referral: %w", err)
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

// UpdateStatus sets the status of a referral request.
func (r *ReferralRepository) UpdateStatus(ctx context.Context, id int64, status models.ReferralStatus) error {
	sql, args, err := r.sb.Update("referral_requests").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update referral query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating referral: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrReferralNotFound
	}
	return nil
}
