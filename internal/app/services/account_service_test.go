package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/app/models/dto"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
)

func TestSignup_Student(t *testing.T) {
	h := newHarness(t)

	payload, err := signupRequest("stu", "student").Payload()
	require.NoError(t, err)
	user, token, err := h.account.Signup(bg(), payload)
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.Len(t, token, 40)
	assert.Nil(t, user.AlumniProfile)
	assert.Empty(t, h.db.profiles, "students never get an alumni profile")
	assert.NotEqual(t, "s3cret-pass", h.db.users[user.ID].PasswordHash)
}

func TestSignup_AlumniCreatesProfile(t *testing.T) {
	h := newHarness(t)

	user := h.signup(t, "alum", "alumni")

	require.NotNil(t, user.AlumniProfile)
	assert.Equal(t, "Engineer", *user.AlumniProfile.JobTitle)
	assert.Equal(t, "Acme", *user.AlumniProfile.CurrentCompany)
	assert.True(t, user.AlumniProfile.WillingToMentor)
	assert.Empty(t, user.AlumniProfile.AvailableFor)
	assert.Contains(t, h.db.profiles, user.ID)
}

func TestSignup_PasswordMismatchCreatesNothing(t *testing.T) {
	h := newHarness(t)
	req := signupRequest("stu", "student")
	req.ConfirmPassword = "something-else"

	payload, err := req.Payload()
	require.NoError(t, err)
	_, _, err = h.account.Signup(bg(), payload)

	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Contains(t, apperrors.Details(err), "confirm_password")
	assert.Empty(t, h.db.users)
}

func TestSignup_AlumniMissingEmploymentFields(t *testing.T) {
	h := newHarness(t)
	req := signupRequest("alum", "alumni")
	req.JobTitle = ""
	req.CurrentCompany = "  "

	payload, err := req.Payload()
	require.NoError(t, err)
	_, _, err = h.account.Signup(bg(), payload)

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	details := apperrors.Details(err)
	assert.Contains(t, details, "job_title")
	assert.Contains(t, details, "current_company")
	assert.Empty(t, h.db.users)
}

func TestSignup_StudentIgnoresAlumniFields(t *testing.T) {
	h := newHarness(t)
	req := signupRequest("stu", "student")
	req.JobTitle = ""

	payload, err := req.Payload()
	require.NoError(t, err)
	_, _, err = h.account.Signup(bg(), payload)
	assert.NoError(t, err)
}

func TestSignup_ProfileFailureRollsBackUser(t *testing.T) {
	h := newHarness(t)
	h.db.failProfileCreate = errors.New("disk full")

	payload, err := signupRequest("alum", "alumni").Payload()
	require.NoError(t, err)
	_, _, err = h.account.Signup(bg(), payload)
	require.Error(t, err)
	assert.Empty(t, h.db.users)

	h.db.failProfileCreate = nil
	user := h.signup(t, "alum", "alumni")
	assert.Equal(t, "alum", user.Username)
}

func TestSignup_DuplicateUsername(t *testing.T) {
	h := newHarness(t)
	h.signup(t, "stu", "student")

	payload, err := signupRequest("stu", "student").Payload()
	require.NoError(t, err)
	_, _, err = h.account.Signup(bg(), payload)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	h := newHarness(t)
	h.signup(t, "stu", "student")

	req := signupRequest("stu2", "student")
	req.Email = "stu@example.com"
	payload, err := req.Payload()
	require.NoError(t, err)
	_, _, err = h.account.Signup(bg(), payload)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, apperrors.Details(err), "email")
	assert.Len(t, h.db.users, 1)
}

func TestSignup_UnknownRole(t *testing.T) {
	_, err := signupRequest("x", "staff").Payload()
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Contains(t, apperrors.Details(err), "role")
}

func profilePayload(t *testing.T, body string) (models.UserUpdate, models.AlumniProfileUpdate) {
	t.Helper()
	var p dto.ProfilePayload
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	u, a, err := p.Split()
	require.NoError(t, err)
	return u, a
}

func TestUpdateProfile_AlumniMergesFields(t *testing.T) {
	h := newHarness(t)
	alum := h.signup(t, "alum", "alumni")

	u, a := profilePayload(t, `{"bio":"Mentor","industry":"Tech","available_for":[1,"2"],"username":"ignored"}`)
	updated, err := h.account.UpdateProfile(bg(), alum.ID, u, a)
	require.NoError(t, err)

	assert.Equal(t, "alum", updated.Username)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "Mentor", *updated.Bio)
	require.NotNil(t, updated.AlumniProfile)
	assert.Equal(t, "Tech", *updated.AlumniProfile.Industry)
	assert.Equal(t, "Engineer", *updated.AlumniProfile.JobTitle, "untouched fields keep their value")
	require.Len(t, updated.AlumniProfile.AvailableFor, 2)
	assert.Equal(t, "Resume Review", updated.AlumniProfile.AvailableFor[1].Name)
}

func TestUpdateProfile_EmptyStringsBecomeNull(t *testing.T) {
	h := newHarness(t)
	alum := h.signup(t, "alum", "alumni")

	u, a := profilePayload(t, `{"batch_year":"","job_title":""}`)
	updated, err := h.account.UpdateProfile(bg(), alum.ID, u, a)
	require.NoError(t, err)

	assert.Nil(t, updated.BatchYear)
	assert.Nil(t, updated.AlumniProfile.JobTitle)
	assert.Equal(t, "Acme", *updated.AlumniProfile.CurrentCompany)
}

func TestUpdateProfile_StudentIgnoresAlumniFields(t *testing.T) {
	h := newHarness(t)
	stu := h.signup(t, "stu", "student")

	u, a := profilePayload(t, `{"first_name":"Ada","industry":"Tech"}`)
	updated, err := h.account.UpdateProfile(bg(), stu.ID, u, a)
	require.NoError(t, err)

	assert.Equal(t, "Ada", updated.FirstName)
	assert.Nil(t, updated.AlumniProfile)
	assert.Empty(t, h.db.profiles)
}

func TestUpdateProfile_UnknownMentorshipType(t *testing.T) {
	h := newHarness(t)
	alum := h.signup(t, "alum", "alumni")

	u, a := profilePayload(t, `{"bio":"changed","available_for":[1,999]}`)
	_, err := h.account.UpdateProfile(bg(), alum.ID, u, a)

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Contains(t, apperrors.Details(err), "available_for")
	assert.Nil(t, h.db.users[alum.ID].Bio)
}

func TestUpdateProfile_DuplicateEmail(t *testing.T) {
	h := newHarness(t)
	h.signup(t, "stu", "student")
	alum := h.signup(t, "alum", "alumni")

	u, a := profilePayload(t, `{"email":"stu@example.com","bio":"changed"}`)
	_, err := h.account.UpdateProfile(bg(), alum.ID, u, a)

	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	assert.Equal(t, "alum@example.com", h.db.users[alum.ID].Email)
}

func TestGetProfile_AlumniWithoutProfile(t *testing.T) {
	h := newHarness(t)
	alum := h.signup(t, "alum", "alumni")
	delete(h.db.profiles, alum.ID)

	user, err := h.account.GetProfile(bg(), alum.ID)
	require.NoError(t, err)
	assert.Nil(t, user.AlumniProfile)

	u, a := profilePayload(t, `{"industry":"Tech","last_name":"X"}`)
	updated, err := h.account.UpdateProfile(bg(), alum.ID, u, a)
	require.NoError(t, err)
	assert.Equal(t, "X", updated.LastName)
}

func TestAlumniDirectory(t *testing.T) {
	h := newHarness(t)
	stu := h.signup(t, "stu", "student")
	alum := h.signup(t, "alum", "alumni")

	list, err := h.alumni.List(bg())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, alum.ID, list[0].ID)
	assert.NotNil(t, list[0].AlumniProfile)

	_, err = h.alumni.Get(bg(), stu.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	got, err := h.alumni.Get(bg(), alum.ID)
	require.NoError(t, err)
	assert.Equal(t, "alum", got.Username)
}

func TestMentorshipTypes_EnsureDefaults(t *testing.T) {
	h := newHarness(t)

	added, err := h.types.EnsureDefaults(bg())
	require.NoError(t, err)
	again, err := h.types.EnsureDefaults(bg())
	require.NoError(t, err)

	assert.Positive(t, added)
	assert.Zero(t, again)
	list, err := h.types.List(bg())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(list), len(DefaultMentorshipTypes))
}
