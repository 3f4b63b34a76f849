package services

import (
	"context"
	"time"

	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/app/repositories"
	"github.com/gradnexus/campusconnect/internal/db"
	"github.com/gradnexus/campusconnect/internal/pkg/email"
)

// Transactor runs fn inside one database transaction. Stores called with the ctx
// handed to fn join that transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// UserStore is the persistence the services need for users.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ListByRole(ctx context.Context, role models.RoleType) ([]*models.User, error)
	Update(ctx context.Context, id int64, upd models.UserUpdate) error
	Delete(ctx context.Context, id int64) error
}

type AlumniProfileStore interface {
	Create(ctx context.Context, profile *models.AlumniProfile) error
	GetByUserID(ctx context.Context, userID int64) (*models.AlumniProfile, error)
	ListByUserIDs(ctx context.Context, userIDs []int64) (map[int64]*models.AlumniProfile, error)
	Update(ctx context.Context, userID int64, upd models.AlumniProfileUpdate) error
}

type MentorshipTypeStore interface {
	List(ctx context.Context) ([]models.MentorshipType, error)
	GetByID(ctx context.Context, id int64) (*models.MentorshipType, error)
	GetByIDs(ctx context.Context, ids []int64) ([]models.MentorshipType, error)
	EnsureExists(ctx context.Context, names []string) (int64, error)
}

type TokenStore interface {
	GetOrCreate(ctx context.Context, userID int64, candidate string) (string, error)
	GetUserIDByKey(ctx context.Context, key string) (int64, error)
}

type SessionStore interface {
	Create(ctx context.Context, key string, userID int64, expiresAt time.Time) error
	GetUserID(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, key string) error
	DeleteExpired(ctx context.Context, userID int64) error
}

type EventStore interface {
	List(ctx context.Context, viewerID int64) ([]*models.Event, error)
	GetByID(ctx context.Context, id, viewerID int64) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int64) error
	ToggleRegistration(ctx context.Context, eventID, userID int64) (bool, error)
	ListParticipants(ctx context.Context, eventID int64) ([]models.UserSummary, error)
}

type MentorshipRequestStore interface {
	Create(ctx context.Context, req *models.MentorshipRequest, typeIDs []int64) error
	GetByID(ctx context.Context, id int64) (*models.MentorshipRequest, error)
	List(ctx context.Context, filter repositories.RequestFilter) ([]*models.MentorshipRequest, error)
	UpdateStatusIfPending(ctx context.Context, id int64, status models.RequestStatus) (bool, error)
	StatusCounts(ctx context.Context, alumniID int64) (*models.RequestStatusCounts, error)
}

type MentorshipActivityStore interface {
	Create(ctx context.Context, activity *models.MentorshipActivity) error
	List(ctx context.Context, filter repositories.ActivityFilter) ([]*models.MentorshipActivity, error)
}

type JobStore interface {
	List(ctx context.Context, postedBy int64) ([]*models.Job, error)
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id int64) error
}

type ReferralStore interface {
	Create(ctx context.Context, rr *models.ReferralRequest) error
	GetByID(ctx context.Context, id int64) (*models.ReferralRequest, error)
	List(ctx context.Context, filter repositories.ReferralFilter) ([]*models.ReferralRequest, error)
	UpdateStatus(ctx context.Context, id int64, status models.ReferralStatus) error
}

// NotificationQueue accepts outbound email without waiting for delivery.
type NotificationQueue interface {
	Enqueue(msg email.Message) bool
}

var (
	_ Transactor              = (*db.PostgresDB)(nil)
	_ UserStore               = (*repositories.UserRepository)(nil)
	_ AlumniProfileStore      = (*repositories.AlumniProfileRepository)(nil)
	_ MentorshipTypeStore     = (*repositories.MentorshipTypeRepository)(nil)
	_ TokenStore              = (*repositories.TokenRepository)(nil)
	_ SessionStore            = (*repositories.SessionRepository)(nil)
	_ EventStore              = (*repositories.EventRepository)(nil)
	_ MentorshipRequestStore  = (*repositories.MentorshipRequestRepository)(nil)
	_ MentorshipActivityStore = (*repositories.MentorshipActivityRepository)(nil)
	_ JobStore                = (*repositories.JobRepository)(nil)
	_ ReferralStore           = (*repositories.ReferralRepository)(nil)
	_ NotificationQueue       = (*email.Dispatcher)(nil)
)

// uniqueIDs drops duplicates while keeping the first occurrence order.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
