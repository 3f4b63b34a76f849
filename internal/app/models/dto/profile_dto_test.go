package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
)

func split(t *testing.T, body string) (models.UserUpdate, models.AlumniProfileUpdate, error) {
	t.Helper()
	var p ProfilePayload
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p.Split()
}

func TestProfilePayload_Split(t *testing.T) {
	u, a, err := split(t, `{
		"first_name": "Ada",
		"phone": null,
		"batch_year": "2019",
		"industry": "",
		"years_of_experience": 4,
		"willing_to_mentor": "true",
		"available_for": [1, "3"],
		"role": "alumni"
	}`)
	require.NoError(t, err)

	assert.Equal(t, models.SetTo("Ada"), u.FirstName)
	assert.True(t, u.Phone.Set)
	assert.Nil(t, u.Phone.Value)
	assert.Equal(t, models.SetTo(2019), u.BatchYear)
	assert.False(t, u.LastName.Set)

	assert.True(t, a.Industry.Set)
	assert.Nil(t, a.Industry.Value)
	assert.Equal(t, models.SetTo(4), a.YearsOfExperience)
	assert.Equal(t, models.SetTo(true), a.WillingToMentor)
	assert.Equal(t, models.SetTo([]int64{1, 3}), a.AvailableFor)
	assert.False(t, a.JobTitle.Set)
}

func TestProfilePayload_EmptyBatchYearIsNull(t *testing.T) {
	u, _, err := split(t, `{"batch_year": ""}`)
	require.NoError(t, err)
	assert.True(t, u.BatchYear.Set)
	assert.Nil(t, u.BatchYear.Value)
}

func TestProfilePayload_Errors(t *testing.T) {
	_, _, err := split(t, `{
		"first_name": null,
		"email": "not-an-email",
		"batch_year": "soon",
		"linkedin_url": "nope",
		"willing_to_mentor": "maybe",
		"available_for": ["x"]
	}`)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)

	details := apperrors.Details(err)
	for _, key := range []string{"first_name", "email", "batch_year", "linkedin_url", "willing_to_mentor", "available_for"} {
		assert.Contains(t, details, key)
	}
}

func TestProfilePayload_NullBooleanRejected(t *testing.T) {
	_, a, err := split(t, `{"willing_to_mentor": null}`)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "This field may not be null.", apperrors.Details(err)["willing_to_mentor"])
	assert.False(t, a.WillingToMentor.Set)
}

func TestProfilePayloadFromForm(t *testing.T) {
	p := ProfilePayloadFromForm(map[string][]string{
		"bio":           {"Hello"},
		"available_for": {"1", "2"},
		"empty":         {},
	})
	u, a, err := p.Split()
	require.NoError(t, err)
	assert.Equal(t, models.SetTo("Hello"), u.Bio)
	assert.Equal(t, models.SetTo([]int64{1, 2}), a.AvailableFor)
	assert.NotContains(t, p, "empty")
}

func TestSignupRequest_Payload(t *testing.T) {
	year := 2020
	mentor := true
	req := &SignupRequest{
		Username:        " jane ",
		Role:            "Alumni",
		BatchYear:       &year,
		JobTitle:        " Engineer ",
		CurrentCompany:  "Acme",
		WillingToMentor: &mentor,
	}

	payload, err := req.Payload()
	require.NoError(t, err)
	alumni, ok := payload.(*AlumniSignup)
	require.True(t, ok)
	assert.Equal(t, models.RoleAlumni, alumni.Role())
	assert.Equal(t, "jane", alumni.Common().Username)
	assert.Equal(t, "Engineer", alumni.JobTitle)
	assert.True(t, alumni.WillingToMentor)

	req.Role = "student"
	payload, err = req.Payload()
	require.NoError(t, err)
	_, ok = payload.(*StudentSignup)
	assert.True(t, ok)

	req.Role = ""
	_, err = req.Payload()
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateActivityRequest_ToModel(t *testing.T) {
	a, err := (&CreateActivityRequest{MentorshipRequest: 3, Title: "Call", Date: "2025-06-01T18:30"}).ToModel()
	require.NoError(t, err)
	assert.Equal(t, models.ActivityPending, a.Status)
	require.NotNil(t, a.Date)
	assert.True(t, a.Date.Equal(time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)))
	assert.Nil(t, a.MeetingLink)

	_, err = (&CreateActivityRequest{Title: "Call", Date: "June 1st"}).ToModel()
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestNormalizeClock(t *testing.T) {
	assert.Equal(t, "18:30:00", NormalizeClock("18:30"))
	assert.Equal(t, "18:30:15", NormalizeClock("18:30:15"))
}
