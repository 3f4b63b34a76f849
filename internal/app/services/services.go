package services

import (
	"github.com/gradnexus/campusconnect/internal/app/repositories"
	"github.com/gradnexus/campusconnect/internal/db"
	pkgauth "github.com/gradnexus/campusconnect/internal/pkg/auth"
	"github.com/gradnexus/campusconnect/internal/pkg/logger"
)

// Services holds every service of the application.
type Services struct {
	Auth            AuthService
	Account         AccountService
	Alumni          AlumniService
	Event           EventService
	Mentorship      MentorshipService
	MentorshipTypes MentorshipTypeService
	Job             JobService
	Referral        ReferralService
}

// NewServices wires the services over the repositories. Each service logs as its own component.
func NewServices(
	database *db.PostgresDB,
	repos *repositories.Repositories,
	hasher *pkgauth.PasswordHasher,
	signer *pkgauth.SessionSigner,
	notifier NotificationQueue,
) *Services {
	authService := NewAuthService(
		repos.UserRepository,
		repos.TokenRepository,
		repos.SessionRepository,
		hasher,
		signer,
		logger.Component("auth"),
	)
	accountService := NewAccountService(
		database,
		repos.UserRepository,
		repos.AlumniProfileRepository,
		repos.MentorshipTypeRepository,
		authService,
		hasher,
		logger.Component("account"),
	)
	mentorshipService := NewMentorshipService(
		database,
		repos.MentorshipRequestRepository,
		repos.MentorshipActivityRepository,
		repos.UserRepository,
		repos.MentorshipTypeRepository,
		notifier,
		logger.Component("mentorship"),
	)

	return &Services{
		Auth:            authService,
		Account:         accountService,
		Alumni:          NewAlumniService(repos.UserRepository, repos.AlumniProfileRepository),
		Event:           NewEventService(repos.EventRepository, logger.Component("event")),
		Mentorship:      mentorshipService,
		MentorshipTypes: NewMentorshipTypeService(repos.MentorshipTypeRepository),
		Job:             NewJobService(repos.JobRepository, logger.Component("job")),
		Referral:        NewReferralService(repos.ReferralRepository, repos.JobRepository, logger.Component("referral")),
	}
}
