package dto

import (
	"strings"

	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
)

// SignupRequest is the raw signup body. It is never validated as is: Payload picks
// the role variant first and validation runs on that.
type SignupRequest struct {
	Username        string  `json:"username" form:"username"`
	Email           string  `json:"email" form:"email"`
	Password        string  `json:"password" form:"password"`
	ConfirmPassword string  `json:"confirm_password" form:"confirm_password"`
	FirstName       string  `json:"first_name" form:"first_name"`
	LastName        string  `json:"last_name" form:"last_name"`
	Role            string  `json:"role" form:"role"`
	Phone           *string `json:"phone" form:"phone"`
	College         string  `json:"college" form:"college"`
	Degree          string  `json:"degree" form:"degree"`
	BatchYear       *int    `json:"batch_year" form:"batch_year"`
	Bio             *string `json:"bio" form:"bio"`

	// alumni only
	JobTitle        string `json:"job_title" form:"job_title"`
	CurrentCompany  string `json:"current_company" form:"current_company"`
	WillingToMentor *bool  `json:"willing_to_mentor" form:"willing_to_mentor"`
}

// SignupCommon holds the fields shared by every role.
type SignupCommon struct {
	Username        string  `json:"username" validate:"required,max=150,username"`
	Email           string  `json:"email" validate:"required,email,max=254"`
	Password        string  `json:"password" validate:"required,min=8,max=128"`
	ConfirmPassword string  `json:"confirm_password" validate:"required"`
	FirstName       string  `json:"first_name" validate:"required,max=150"`
	LastName        string  `json:"last_name" validate:"max=150"`
	Phone           *string `json:"phone" validate:"omitempty,max=15"`
	College         string  `json:"college" validate:"required,max=100"`
	Degree          string  `json:"degree" validate:"required,max=100"`
	BatchYear       *int    `json:"batch_year" validate:"required,gte=1900,max=2100"`
	Bio             *string `json:"bio"`
}

// SignupPayload is either a StudentSignup or an AlumniSignup.
type SignupPayload interface {
	Common() *SignupCommon
	Role() models.RoleType
}

// StudentSignup carries no alumni fields, whatever the raw body contained.
type StudentSignup struct {
	SignupCommon
}

func (s *StudentSignup) Common() *SignupCommon { return &s.SignupCommon }
func (s *StudentSignup) Role() models.RoleType { return models.RoleStudent }

// AlumniSignup requires the employment fields that seed the alumni profile.
type AlumniSignup struct {
	SignupCommon
	JobTitle        string `json:"job_title" validate:"required,max=100"`
	CurrentCompany  string `json:"current_company" validate:"required,max=100"`
	WillingToMentor bool   `json:"willing_to_mentor"`
}

func (a *AlumniSignup) Common() *SignupCommon { return &a.SignupCommon }
func (a *AlumniSignup) Role() models.RoleType { return models.RoleAlumni }

// Payload selects the variant named by the role discriminant.
func (r *SignupRequest) Payload() (SignupPayload, error) {
	common := SignupCommon{
		Username:        strings.TrimSpace(r.Username),
		Email:           strings.TrimSpace(r.Email),
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Phone:           r.Phone,
		College:         r.College,
		Degree:          r.Degree,
		BatchYear:       r.BatchYear,
		Bio:             r.Bio,
	}

	switch models.RoleType(strings.ToLower(strings.TrimSpace(r.Role))) {
	case models.RoleStudent:
		return &StudentSignup{SignupCommon: common}, nil
	case models.RoleAlumni:
		return &AlumniSignup{
			SignupCommon:    common,
			JobTitle:        strings.TrimSpace(r.JobTitle),
			CurrentCompany:  strings.TrimSpace(r.CurrentCompany),
			WillingToMentor: r.WillingToMentor != nil && *r.WillingToMentor,
		}, nil
	default:
		return nil, apperrors.NewValidationError("Validation failed", map[string]string{
			"role": `Must be one of: student alumni.`,
		})
	}
}

// LoginRequest carries login credentials. Missing fields are checked by the
// service so the response can distinguish them from bad credentials.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// AuthResponse is returned by signup.
type AuthResponse struct {
	Token string       `json:"token" example:"9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b"`
	User  *models.User `json:"user"`
}

// LoginResponse is returned by login.
type LoginResponse struct {
	Message string       `json:"message" example:"Login successful"`
	Token   string       `json:"token" example:"9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b"`
	User    *models.User `json:"user"`
}
