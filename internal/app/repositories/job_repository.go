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

// JobRepository handles job postings
type JobRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(database *db.PostgresDB) *JobRepository {
	return &JobRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *JobRepository) selectJobs() squirrel.SelectBuilder {
	return r.sb.Select(
		"j.id", "j.title", "j.company", "j.location", "j.description", "j.job_type", "j.link",
		"j.posted_at", "j.posted_by", "u.username", "u.first_name", "u.last_name",
	).
		From("jobs j").
		Join("users u ON u.id = j.posted_by")
}

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	var first, last string
	err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description, &j.JobType, &j.Link,
		&j.PostedAt, &j.PostedBy, &j.PostedByName, &first, &last)
	if err != nil {
		return nil, err
	}
	j.PostedByFullName = (&models.User{FirstName: first, LastName: last}).FullName()
	return &j, nil
}

// List returns job postings, newest first. postedBy 0 lists every job.
func (r *JobRepository) List(ctx context.Context, postedBy int64) ([]*models.Job, error) {
	q := r.selectJobs().OrderBy("j.posted_at DESC", "j.id DESC")
	if postedBy != 0 {
		q = q.Where(squirrel.Eq{"j.posted_by": postedBy})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list jobs SQL")
		return nil, fmt.Errorf("failed to build list jobs query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*models.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// GetByID retrieves a job by ID
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	sql, args, err := r.selectJobs().Where(squirrel.Eq{"j.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get job query: %w", err)
	}

	j, err := scanJob(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, fmt.Errorf("error retrieving job: %w", err)
	}
	return j, nil
}

// Create inserts a job and fills its id and posted_at.
func (r *JobRepository) Create(ctx context.Context, j *models.Job) error {
	sql, args, err := r.sb.Insert("jobs").
		Columns("title", "company", "location", "description", "job_type", "link", "posted_by").
		Values(j.Title, j.Company, j.Location, j.Description, j.JobType, j.Link, j.PostedBy).
		Suffix("RETURNING id, posted_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create job query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&j.ID, &j.PostedAt); err != nil {
		return fmt.Errorf("error creating job: %w", err)
	}
	return nil
}

// Update replaces the editable fields of a job.
func (r *JobRepository) Update(ctx context.Context, j *models.Job) error {
	sql, args, err := r.sb.Update("jobs").
		Set("title", j.Title).
		Set("company", j.Company).
		Set("location", j.Location).
		Set("description", j.Description).
		Set("job_type", j.JobType).
		Set("link", j.Link).
		Where(squirrel.Eq{"id": j.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update job query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

// Delete deletes a job by ID
func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("jobs").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete job query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}
