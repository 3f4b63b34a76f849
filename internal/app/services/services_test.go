package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gradnexus/campusconnect/internal/app/auth"
	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/app/models/dto"
	pkgauth "github.com/gradnexus/campusconnect/internal/pkg/auth"
)

type harness struct {
	db    *memDB
	queue *memQueue

	auth       AuthService
	account    AccountService
	alumni     AlumniService
	events     EventService
	mentorship MentorshipService
	types      MentorshipTypeService
	jobs       JobService
	referrals  ReferralService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	m := newMemDB()
	q := &memQueue{}
	nop := zerolog.Nop()

	hasher := pkgauth.NewPasswordHasher(bcrypt.MinCost)
	signer := pkgauth.NewSessionSigner(pkgauth.SessionConfig{SecretKey: "test-secret", TTL: time.Hour, Issuer: "gradnexus"})

	users := memUsers{m}
	profiles := memProfiles{m}
	types := memTypes{m}

	authSvc := NewAuthService(users, memTokens{m}, memSessions{m}, hasher, signer, nop)
	return &harness{
		db:         m,
		queue:      q,
		auth:       authSvc,
		account:    NewAccountService(m, users, profiles, types, authSvc, hasher, nop),
		alumni:     NewAlumniService(users, profiles),
		events:     NewEventService(memEvents{m}, nop),
		mentorship: NewMentorshipService(m, memRequests{m}, memActivities{m}, users, types, q, nop),
		types:      NewMentorshipTypeService(types),
		jobs:       NewJobService(memJobs{m}, nop),
		referrals:  NewReferralService(memReferrals{m}, memJobs{m}, nop),
	}
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func bg() context.Context     { return context.Background() }
func identity(u *models.User) *auth.Identity {
	return &auth.Identity{UserID: u.ID, Username: u.Username, Role: u.Role, Method: auth.MethodToken}
}

func signupRequest(username, role string) *dto.SignupRequest {
	return &dto.SignupRequest{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
		FirstName:       "First",
		LastName:        "Last",
		Role:            role,
		College:         "Engineering College",
		Degree:          "B.Tech",
		BatchYear:       intPtr(2020),
		JobTitle:        "Engineer",
		CurrentCompany:  "Acme",
		WillingToMentor: boolPtr(true),
	}
}

func (h *harness) signup(t *testing.T, username, role string) *models.User {
	t.Helper()
	payload, err := signupRequest(username, role).Payload()
	require.NoError(t, err)
	user, _, err := h.account.Signup(bg(), payload)
	require.NoError(t, err)
	return user
}
