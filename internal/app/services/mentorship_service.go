package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/gradnexus/campusconnect/internal/app/auth"
	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/app/models/dto"
	"github.com/gradnexus/campusconnect/internal/app/repositories"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
	"github.com/gradnexus/campusconnect/internal/pkg/email"
)

// DefaultAvgRating is reported until mentees can rate sessions.
const DefaultAvgRating = 4.9

// MentorshipService handles mentorship requests, their lifecycle and activities.
type MentorshipService interface {
	CreateRequest(ctx context.Context, actor *auth.Identity, alumniID int64, message *string, typeIDs []int64) (*models.MentorshipRequest, error)
	GetRequest(ctx context.Context, actor *auth.Identity, id int64) (*models.MentorshipRequest, error)
	ListRequests(ctx context.Context, actor *auth.Identity) ([]*models.MentorshipRequest, error)
	Transition(ctx context.Context, actor *auth.Identity, id int64, next models.RequestStatus) error

	CreateActivity(ctx context.Context, actor *auth.Identity, activity *models.MentorshipActivity) (*models.MentorshipActivity, error)
	ListActivities(ctx context.Context, actor *auth.Identity, requestID int64, status string) ([]*models.MentorshipActivity, error)

	DashboardStats(ctx context.Context, actor *auth.Identity) (*dto.DashboardStatsResponse, error)
}

type mentorshipServiceImpl struct {
	tx         Transactor
	requests   MentorshipRequestStore
	activities MentorshipActivityStore
	users      UserStore
	types      MentorshipTypeStore
	notifier   NotificationQueue
	logger     zerolog.Logger
}

// NewMentorshipService creates a new MentorshipService
func NewMentorshipService(
	tx Transactor,
	requests MentorshipRequestStore,
	activities MentorshipActivityStore,
	users UserStore,
	types MentorshipTypeStore,
	notifier NotificationQueue,
	logger zerolog.Logger,
) MentorshipService {
	return &mentorshipServiceImpl{
		tx:         tx,
		requests:   requests,
		activities: activities,
		users:      users,
		types:      types,
		notifier:   notifier,
		logger:     logger,
	}
}

// CreateRequest opens a pending request from the calling student to alumniID.
func (s *mentorshipServiceImpl) CreateRequest(ctx context.Context, actor *auth.Identity, alumniID int64, message *string, typeIDs []int64) (*models.MentorshipRequest, error) {
	if err := auth.RequireRole(actor, models.RoleStudent, "Only students can send mentorship requests."); err != nil {
		return nil, err
	}

	target, err := s.users.GetByID(ctx, alumniID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewValidationError("Validation failed", map[string]string{
				"alumni": fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", alumniID),
			})
		}
		return nil, err
	}
	if !target.IsAlumni() {
		return nil, apperrors.NewValidationError("Validation failed", map[string]string{
			"alumni": "Mentorship can only be requested from alumni.",
		})
	}

	ids := uniqueIDs(typeIDs)
	if len(ids) == 0 {
		return nil, apperrors.NewValidationError("Validation failed", map[string]string{
			"mentorship_types": "This list may not be empty.",
		})
	}
	found, err := s.types.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, apperrors.NewValidationError("Validation failed", map[string]string{
			"mentorship_types": "Invalid pk - object does not exist.",
		})
	}

	req := &models.MentorshipRequest{
		StudentID: actor.UserID,
		AlumniID:  alumniID,
		Message:   message,
		Status:    models.RequestPending,
	}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.requests.Create(ctx, req, ids)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("requestID", req.ID).Int64("studentID", actor.UserID).Int64("alumniID", alumniID).
		Msg("Mentorship request created")
	return s.requests.GetByID(ctx, req.ID)
}

func (s *mentorshipServiceImpl) GetRequest(ctx context.Context, actor *auth.Identity, id int64) (*models.MentorshipRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireRequestParty(actor, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ListRequests returns the requests a student sent or an alumni received.
func (s *mentorshipServiceImpl) ListRequests(ctx context.Context, actor *auth.Identity) ([]*models.MentorshipRequest, error) {
	switch {
	case actor.IsStudent():
		return s.requests.List(ctx, repositories.RequestFilter{StudentID: actor.UserID})
	case actor.IsAlumni():
		return s.requests.List(ctx, repositories.RequestFilter{AlumniID: actor.UserID})
	default:
		return []*models.MentorshipRequest{}, nil
	}
}

// Transition moves a pending request into next. Accept and reject belong to the
// alumni of the request, cancel to its student. Terminal requests never move.
func (s *mentorshipServiceImpl) Transition(ctx context.Context, actor *auth.Identity, id int64, next models.RequestStatus) error {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return err
	}

	switch next {
	case models.RequestAccepted, models.RequestRejected:
		err = auth.RequireOwner(actor, req.AlumniID, "Only the requested alumni can accept or reject this request.")
	case models.RequestCancelled:
		err = auth.RequireOwner(actor, req.StudentID, "Only the requesting student can cancel this request.")
	default:
		err = apperrors.NewBadRequestError(fmt.Sprintf("unsupported transition to %q", next))
	}
	if err != nil {
		return err
	}

	if !req.Status.CanTransitionTo(next) {
		return apperrors.ErrInvalidTransition
	}
	moved, err := s.requests.UpdateStatusIfPending(ctx, id, next)
	if err != nil {
		return err
	}
	if !moved {
		return apperrors.ErrInvalidTransition
	}

	s.logger.Info().Int64("requestID", id).Str("status", string(next)).Int64("actorID", actor.UserID).
		Msg("Mentorship request transitioned")
	return nil
}

// CreateActivity records an activity on a request the caller is party to. A
// scheduled activity queues an email to the student once it is stored.
func (s *mentorshipServiceImpl) CreateActivity(ctx context.Context, actor *auth.Identity, activity *models.MentorshipActivity) (*models.MentorshipActivity, error) {
	if activity.Status == "" {
		activity.Status = models.ActivityPending
	}
	if !activity.Status.Valid() {
		return nil, apperrors.NewValidationError("Validation failed", map[string]string{
			"status": fmt.Sprintf("\"%s\" is not a valid choice.", activity.Status),
		})
	}

	req, err := s.requests.GetByID(ctx, activity.MentorshipRequestID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireRequestParty(actor, req); err != nil {
		return nil, err
	}

	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}

	if activity.Status == models.ActivityScheduled {
		s.notifyScheduled(req, activity)
	}
	return activity, nil
}

func (s *mentorshipServiceImpl) notifyScheduled(req *models.MentorshipRequest, activity *models.MentorshipActivity) {
	if req.Student == nil || req.Student.Email == "" {
		s.logger.Warn().Int64("requestID", req.ID).Msg("Student has no email, skipping session notification")
		return
	}
	mentor := ""
	if req.Alumni != nil {
		mentor = req.Alumni.FullName()
	}

	msg := email.ScheduledSession{
		StudentFirstName: req.Student.FirstName,
		MentorFullName:   mentor,
		Title:            activity.Title,
		Date:             activity.Date,
		MeetingLink:      activity.MeetingLink,
		Description:      activity.Description,
	}.Message(req.Student.Email)

	if !s.notifier.Enqueue(msg) {
		s.logger.Warn().Int64("activityID", activity.ID).Msg("Session notification dropped")
	}
}

// ListActivities returns the activities of the caller's requests, optionally narrowed
// to one request and one status.
func (s *mentorshipServiceImpl) ListActivities(ctx context.Context, actor *auth.Identity, requestID int64, status string) ([]*models.MentorshipActivity, error) {
	st := models.ActivityStatus(status)
	if status != "" && !st.Valid() {
		return nil, apperrors.NewValidationError("Validation failed", map[string]string{
			"status": fmt.Sprintf("\"%s\" is not a valid choice.", status),
		})
	}
	return s.activities.List(ctx, repositories.ActivityFilter{
		ParticipantID: actor.UserID,
		RequestID:     requestID,
		Status:        st,
	})
}

// DashboardStats summarises the calling alumni's mentoring.
func (s *mentorshipServiceImpl) DashboardStats(ctx context.Context, actor *auth.Identity) (*dto.DashboardStatsResponse, error) {
	if err := auth.RequireRole(actor, models.RoleAlumni, "Only alumni have a mentoring dashboard."); err != nil {
		return nil, err
	}

	counts, err := s.requests.StatusCounts(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	rate := 0
	if counts.NonCancelled > 0 {
		rate = int(math.Round(float64(counts.Accepted) * 100 / float64(counts.NonCancelled)))
	}
	return &dto.DashboardStatsResponse{
		TotalMentees:  counts.DistinctAcceptedStudents,
		HoursMentored: counts.CompletedActivities,
		AvgRating:     DefaultAvgRating,
		SuccessRate:   fmt.Sprintf("%d%%", rate),
	}, nil
}
