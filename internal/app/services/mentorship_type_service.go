package services

import (
	"context"

	"github.com/gradnexus/campusconnect/internal/app/models"
)

// DefaultMentorshipTypes are created at startup when missing.
var DefaultMentorshipTypes = []string{
	"Career Guidance",
	"Resume Review",
	"Interview Preparation",
	"Technical Skills",
	"Higher Studies",
	"Networking",
}

// MentorshipTypeService exposes the mentorship type catalogue.
type MentorshipTypeService interface {
	List(ctx context.Context) ([]models.MentorshipType, error)
	Get(ctx context.Context, id int64) (*models.MentorshipType, error)
	EnsureDefaults(ctx context.Context) (int64, error)
}

type mentorshipTypeServiceImpl struct {
	types MentorshipTypeStore
}

// NewMentorshipTypeService creates a new MentorshipTypeService
func NewMentorshipTypeService(types MentorshipTypeStore) MentorshipTypeService {
	return &mentorshipTypeServiceImpl{types: types}
}

func (s *mentorshipTypeServiceImpl) List(ctx context.Context) ([]models.MentorshipType, error) {
	return s.types.List(ctx)
}

func (s *mentorshipTypeServiceImpl) Get(ctx context.Context, id int64) (*models.MentorshipType, error) {
	return s.types.GetByID(ctx, id)
}

// EnsureDefaults inserts the missing default types and reports how many were added.
func (s *mentorshipTypeServiceImpl) EnsureDefaults(ctx context.Context) (int64, error) {
	return s.types.EnsureExists(ctx, DefaultMentorshipTypes)
}
