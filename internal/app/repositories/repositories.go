package repositories

import "github.com/gradnexus/campusconnect/internal/db"

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository               *UserRepository
	AlumniProfileRepository      *AlumniProfileRepository
	MentorshipTypeRepository     *MentorshipTypeRepository
	TokenRepository              *TokenRepository
	SessionRepository            *SessionRepository
	EventRepository              *EventRepository
	MentorshipRequestRepository  *MentorshipRequestRepository
	MentorshipActivityRepository *MentorshipActivityRepository
	JobRepository                *JobRepository
	ReferralRepository           *ReferralRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:               NewUserRepository(database),
		AlumniProfileRepository:      NewAlumniProfileRepository(database),
		MentorshipTypeRepository:     NewMentorshipTypeRepository(database),
		TokenRepository:              NewTokenRepository(database),
		SessionRepository:            NewSessionRepository(database),
		EventRepository:              NewEventRepository(database),
		MentorshipRequestRepository:  NewMentorshipRequestRepository(database),
		MentorshipActivityRepository: NewMentorshipActivityRepository(database),
		JobRepository:                NewJobRepository(database),
		ReferralRepository:           NewReferralRepository(database),
	}
}
