package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gradnexus/campusconnect/internal/app/auth"
	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/app/repositories"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
)

// ReferralService handles referral requests for job postings.
type ReferralService interface {
	List(ctx context.Context, actor *auth.Identity) ([]*models.ReferralRequest, error)
	Get(ctx context.Context, actor *auth.Identity, id int64) (*models.ReferralRequest, error)
	Create(ctx context.Context, actor *auth.Identity, jobID int64, message *string, resumeURL string) (*models.ReferralRequest, error)
	UpdateStatus(ctx context.Context, actor *auth.Identity, id int64, status models.ReferralStatus) (*models.ReferralRequest, error)
}

type referralServiceImpl struct {
	referrals ReferralStore
	jobs      JobStore
	logger    zerolog.Logger
}

// NewReferralService creates a new ReferralService
func NewReferralService(referrals ReferralStore, jobs JobStore, logger zerolog.Logger) ReferralService {
	return &referralServiceImpl{referrals: referrals, jobs: jobs, logger: logger}
}

// List returns a student's own requests, or for alumni the requests made for jobs
// they posted.
func (s *referralServiceImpl) List(ctx context.Context, actor *auth.Identity) ([]*models.ReferralRequest, error) {
	switch {
	case actor.IsStudent():
		return s.referrals.List(ctx, repositories.ReferralFilter{StudentID: actor.UserID})
	case actor.IsAlumni():
		return s.referrals.List(ctx, repositories.ReferralFilter{PosterID: actor.UserID})
	default:
		return []*models.ReferralRequest{}, nil
	}
}

// Get returns a referral to its student or to the poster of its job.
func (s *referralServiceImpl) Get(ctx context.Context, actor *auth.Identity, id int64) (*models.ReferralRequest, error) {
	rr, err := s.referrals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.UserID != rr.StudentID && actor.UserID != rr.JobPostedBy {
		return nil, apperrors.NewForbiddenError("You cannot view this referral request.")
	}
	return rr, nil
}

// Create files a referral request. Only students ask for referrals.
func (s *referralServiceImpl) Create(ctx context.Context, actor *auth.Identity, jobID int64, message *string, resumeURL string) (*models.ReferralRequest, error) {
	if err := auth.RequireRole(actor, models.RoleStudent, "Only students can request referrals."); err != nil {
		return nil, err
	}
	if resumeURL == "" {
		return nil, apperrors.NewValidationError("Validation failed", map[string]string{
			"resume": "No file was submitted.",
		})
	}
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, apperrors.ErrJobNotFound) {
			return nil, apperrors.NewValidationError("Validation failed", map[string]string{
				"job": fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", jobID),
			})
		}
		return nil, err
	}

	rr := &models.ReferralRequest{
		JobID:     jobID,
		StudentID: actor.UserID,
		Message:   message,
		Resume:    resumeURL,
		Status:    models.ReferralPending,
	}
	if err := s.referrals.Create(ctx, rr); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("referralID", rr.ID).Int64("jobID", jobID).Msg("Referral requested")
	return s.referrals.GetByID(ctx, rr.ID)
}

// UpdateStatus lets the job poster mark a referral as viewed, referred or rejected.
func (s *referralServiceImpl) UpdateStatus(ctx context.Context, actor *auth.Identity, id int64, status models.ReferralStatus) (*models.ReferralRequest, error) {
	rr, err := s.referrals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwner(actor, rr.JobPostedBy, "Only the job poster can update this referral request."); err != nil {
		return nil, err
	}
	if err := s.referrals.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.referrals.GetByID(ctx, id)
}
