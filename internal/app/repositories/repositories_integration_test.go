package repositories

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradnexus/campusconnect/internal/app/migrations"
	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/db"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
)

// openTestDB connects to TEST_DATABASE_URL and applies the migrations. Tests using it
// are skipped when the variable is unset.
func openTestDB(t *testing.T) *db.PostgresDB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.NewMigrator(pool, zerolog.Nop()).MigrateFromDirectory(ctx, "../../../migrations"))
	return db.NewFromPool(pool)
}

func createUser(t *testing.T, repos *Repositories, role models.RoleType) *models.User {
	t.Helper()
	name := string(role) + "-" + uuid.NewString()[:8]
	u := &models.User{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
	}
	require.NoError(t, repos.UserRepository.Create(context.Background(), u))
	require.NotZero(t, u.ID)
	return u
}

func TestIntegration_DeleteUserCascades(t *testing.T) {
	database := openTestDB(t)
	repos := NewRepositories(database)
	ctx := context.Background()

	student := createUser(t, repos, models.RoleStudent)
	alumni := createUser(t, repos, models.RoleAlumni)
	require.NoError(t, repos.AlumniProfileRepository.Create(ctx, &models.AlumniProfile{UserID: alumni.ID, WillingToMentor: true}))

	req := &models.MentorshipRequest{StudentID: student.ID, AlumniID: alumni.ID, Status: models.RequestPending}
	require.NoError(t, repos.MentorshipRequestRepository.Create(ctx, req, nil))

	job := &models.Job{Title: "Role", Company: "Acme", Location: "Remote", Description: "d", JobType: models.JobFullTime, PostedBy: alumni.ID}
	require.NoError(t, repos.JobRepository.Create(ctx, job))
	rr := &models.ReferralRequest{JobID: job.ID, StudentID: student.ID, Resume: "/uploads/resumes/cv.pdf", Status: models.ReferralPending}
	require.NoError(t, repos.ReferralRepository.Create(ctx, rr))

	require.NoError(t, repos.UserRepository.Delete(ctx, alumni.ID))

	_, err := repos.AlumniProfileRepository.GetByUserID(ctx, alumni.ID)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
	_, err = repos.MentorshipRequestRepository.GetByID(ctx, req.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	_, err = repos.JobRepository.GetByID(ctx, job.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	_, err = repos.ReferralRepository.GetByID(ctx, rr.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = repos.UserRepository.GetByID(ctx, student.ID)
	assert.NoError(t, err, "the other party survives")
}

func TestIntegration_TransitionOnlyFromPending(t *testing.T) {
	database := openTestDB(t)
	repos := NewRepositories(database)
	ctx := context.Background()

	student := createUser(t, repos, models.RoleStudent)
	alumni := createUser(t, repos, models.RoleAlumni)
	req := &models.MentorshipRequest{StudentID: student.ID, AlumniID: alumni.ID, Status: models.RequestPending}
	require.NoError(t, repos.MentorshipRequestRepository.Create(ctx, req, nil))

	ok, err := repos.MentorshipRequestRepository.UpdateStatusIfPending(ctx, req.ID, models.RequestAccepted)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repos.MentorshipRequestRepository.UpdateStatusIfPending(ctx, req.ID, models.RequestCancelled)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repos.MentorshipRequestRepository.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, got.Status)
}

func TestIntegration_DuplicateUsernameConflicts(t *testing.T) {
	database := openTestDB(t)
	repos := NewRepositories(database)

	u := createUser(t, repos, models.RoleStudent)
	dup := *u
	dup.ID = 0
	err := repos.UserRepository.Create(context.Background(), &dup)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestIntegration_DuplicateEmailConflicts(t *testing.T) {
	database := openTestDB(t)
	repos := NewRepositories(database)
	ctx := context.Background()

	first := createUser(t, repos, models.RoleStudent)
	second := createUser(t, repos, models.RoleStudent)

	dup := &models.User{
		Username:     "other-" + uuid.NewString()[:8],
		Email:        first.Email,
		PasswordHash: "x",
		Role:         models.RoleStudent,
	}
	err := repos.UserRepository.Create(ctx, dup)
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)

	err = repos.UserRepository.Update(ctx, second.ID, models.UserUpdate{Email: models.SetTo(first.Email)})
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)

	for _, id := range []int64{first.ID, second.ID} {
		require.NoError(t, repos.UserRepository.Update(ctx, id, models.UserUpdate{Email: models.SetTo("")}))
	}
}
