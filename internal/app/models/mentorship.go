package models

import "time"

// MentorshipRequest is a directed student -> alumni request for mentoring.
type MentorshipRequest struct {
	ID              int64            `json:"id" db:"id"`
	StudentID       int64            `json:"student" db:"student_id"`
	AlumniID        int64            `json:"alumni" db:"alumni_id"`
	Message         *string          `json:"message" db:"message"`
	Status          RequestStatus    `json:"status" db:"status"`
	RequestedAt     time.Time        `json:"requested_at" db:"requested_at"`
	UpdatedAt       time.Time        `json:"updated_at" db:"updated_at"`
	MentorshipTypes []MentorshipType `json:"mentorship_types_details" db:"-"`

	Student *RequestParty `json:"-" db:"-"`
	Alumni  *RequestParty `json:"-" db:"-"`
}

// IsParty reports whether userID is the student or the alumni of the request.
func (r *MentorshipRequest) IsParty(userID int64) bool {
	return r.StudentID == userID || r.AlumniID == userID
}

// RequestParty is the denormalized view of one side of a request.
type RequestParty struct {
	UserSummary
	Company  *string `json:"company"`
	JobTitle *string `json:"job_title"`
}

// MentorshipActivity is an entry of the activity ledger of a request.
type MentorshipActivity struct {
	ID                  int64          `json:"id" db:"id"`
	MentorshipRequestID int64          `json:"mentorship_request" db:"mentorship_request_id"`
	Title               string         `json:"title" db:"title"`
	Description         *string        `json:"description" db:"description"`
	Status              ActivityStatus `json:"status" db:"status"`
	Date                *time.Time     `json:"date" db:"activity_date"`
	File                *string        `json:"file" db:"file"`
	MeetingLink         *string        `json:"meeting_link" db:"meeting_link"`
	CreatedAt           time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at" db:"updated_at"`
}

// RequestStatusCounts aggregates an alumni's received requests.
type RequestStatusCounts struct {
	DistinctAcceptedStudents int
	Accepted                 int
	NonCancelled             int
	CompletedActivities      int
}
