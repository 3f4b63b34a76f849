package models

import (
	"strings"
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID            int64          `json:"id" db:"id"`
	Username      string         `json:"username" db:"username"`
	Email         string         `json:"email" db:"email"`
	PasswordHash  string         `json:"-" db:"password_hash"`
	FirstName     string         `json:"first_name" db:"first_name"`
	LastName      string         `json:"last_name" db:"last_name"`
	Role          RoleType       `json:"role" db:"role"`
	Phone         *string        `json:"phone" db:"phone"`
	College       string         `json:"college" db:"college"`
	Degree        string         `json:"degree" db:"degree"`
	BatchYear     *int           `json:"batch_year" db:"batch_year"`
	Bio           *string        `json:"bio" db:"bio"`
	Image         *string        `json:"image" db:"image"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
	AlumniProfile *AlumniProfile `json:"alumni_profile" db:"-"` // nil for students
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsAlumni() bool {
	return u.Role == RoleAlumni
}

// AlumniProfile holds employment and mentoring metadata, one per alumni user.
type AlumniProfile struct {
	ID                int64            `json:"-" db:"id"`
	UserID            int64            `json:"-" db:"user_id"`
	CurrentCompany    *string          `json:"current_company" db:"current_company"`
	JobTitle          *string          `json:"job_title" db:"job_title"`
	Industry          *string          `json:"industry" db:"industry"`
	YearsOfExperience *int             `json:"years_of_experience" db:"years_of_experience"`
	LinkedInURL       *string          `json:"linkedin_url" db:"linkedin_url"`
	WillingToMentor   bool             `json:"willing_to_mentor" db:"willing_to_mentor"`
	AvailableFor      []MentorshipType `json:"available_for" db:"-"`
}

// MentorshipType is a named category of mentoring, e.g. "Resume Review".
type MentorshipType struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// UserSummary is the slice of a user shown next to records that reference it.
type UserSummary struct {
	ID        int64   `json:"id" db:"id"`
	Username  string  `json:"username" db:"username"`
	FirstName string  `json:"first_name" db:"first_name"`
	LastName  string  `json:"last_name" db:"last_name"`
	Email     string  `json:"email" db:"email"`
	Degree    string  `json:"-" db:"degree"`
	Image     *string `json:"-" db:"image"`
}

func (u UserSummary) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
