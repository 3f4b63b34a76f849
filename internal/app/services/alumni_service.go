package services

import (
	"context"

	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
)

var errAlumniNotFound = apperrors.NewCustomError(apperrors.ErrResourceNotFound, "alumni not found")

// AlumniService is the read-only alumni directory.
type AlumniService interface {
	List(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
}

type alumniServiceImpl struct {
	users    UserStore
	profiles AlumniProfileStore
}

// NewAlumniService creates a new AlumniService
func NewAlumniService(users UserStore, profiles AlumniProfileStore) AlumniService {
	return &alumniServiceImpl{users: users, profiles: profiles}
}

// List returns every alumni user with its profile loaded.
func (s *alumniServiceImpl) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.ListByRole(ctx, models.RoleAlumni)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	profiles, err := s.profiles.ListByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.AlumniProfile = profiles[u.ID]
	}
	return users, nil
}

// Get returns one alumni. Ids of non-alumni users are reported as not found.
func (s *alumniServiceImpl) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, errAlumniNotFound
		}
		return nil, err
	}
	if !user.IsAlumni() {
		return nil, errAlumniNotFound
	}

	profiles, err := s.profiles.ListByUserIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	user.AlumniProfile = profiles[id]
	return user, nil
}
