package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gradnexus/campusconnect/internal/app/auth"
	"github.com/gradnexus/campusconnect/internal/app/models"
)

// JobService handles job postings.
type JobService interface {
	List(ctx context.Context, actor *auth.Identity, mine bool) ([]*models.Job, error)
	Get(ctx context.Context, id int64) (*models.Job, error)
	Create(ctx context.Context, actor *auth.Identity, job *models.Job) (*models.Job, error)
	Update(ctx context.Context, actor *auth.Identity, id int64, job *models.Job) (*models.Job, error)
	Delete(ctx context.Context, actor *auth.Identity, id int64) error
}

type jobServiceImpl struct {
	jobs   JobStore
	logger zerolog.Logger
}

// NewJobService creates a new JobService
func NewJobService(jobs JobStore, logger zerolog.Logger) JobService {
	return &jobServiceImpl{jobs: jobs, logger: logger}
}

// List returns all postings, or only the caller's when mine is set.
func (s *jobServiceImpl) List(ctx context.Context, actor *auth.Identity, mine bool) ([]*models.Job, error) {
	var postedBy int64
	if mine {
		postedBy = actor.UserID
	}
	return s.jobs.List(ctx, postedBy)
}

func (s *jobServiceImpl) Get(ctx context.Context, id int64) (*models.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// Create publishes a job. Only alumni post jobs.
func (s *jobServiceImpl) Create(ctx context.Context, actor *auth.Identity, job *models.Job) (*models.Job, error) {
	if err := auth.RequireRole(actor, models.RoleAlumni, "Only alumni can post jobs."); err != nil {
		return nil, err
	}
	job.PostedBy = actor.UserID
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("jobID", job.ID).Int64("postedBy", actor.UserID).Msg("Job posted")
	return s.jobs.GetByID(ctx, job.ID)
}

func (s *jobServiceImpl) Update(ctx context.Context, actor *auth.Identity, id int64, job *models.Job) (*models.Job, error) {
	existing, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwner(actor, existing.PostedBy, "Only the poster can modify this job."); err != nil {
		return nil, err
	}

	job.ID = id
	job.PostedBy = existing.PostedBy
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return s.jobs.GetByID(ctx, id)
}

func (s *jobServiceImpl) Delete(ctx context.Context, actor *auth.Identity, id int64) error {
	existing, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.RequireOwner(actor, existing.PostedBy, "Only the poster can delete this job."); err != nil {
		return err
	}
	return s.jobs.Delete(ctx, id)
}
