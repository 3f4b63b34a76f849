package dto

import (
	"time"

	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
)

// CreateMentorshipRequestRequest is sent by a student to an alumni.
type CreateMentorshipRequestRequest struct {
	Alumni          int64   `json:"alumni" binding:"required,min=1" example:"7"`
	Message         *string `json:"message" example:"I'd love advice on backend roles"`
	MentorshipTypes []int64 `json:"mentorship_types" binding:"required,min=1,dive,min=1"`
}

// MentorshipRequestResponse flattens both parties next to the request.
type MentorshipRequestResponse struct {
	ID                     int64                   `json:"id"`
	Student                int64                   `json:"student"`
	StudentName            string                  `json:"student_name"`
	StudentFullName        string                  `json:"student_full_name"`
	StudentDept            string                  `json:"student_dept"`
	StudentImage           *string                 `json:"student_image"`
	Alumni                 int64                   `json:"alumni"`
	AlumniName             string                  `json:"alumni_name"`
	AlumniFullName         string                  `json:"alumni_full_name"`
	AlumniCompany          *string                 `json:"alumni_company"`
	AlumniRole             *string                 `json:"alumni_role"`
	AlumniImage            *string                 `json:"alumni_image"`
	Message                *string                 `json:"message"`
	MentorshipTypes        []int64                 `json:"mentorship_types"`
	MentorshipTypesDetails []models.MentorshipType `json:"mentorship_types_details"`
	Status                 models.RequestStatus    `json:"status"`
	RequestedAt            time.Time               `json:"requested_at"`
	UpdatedAt              time.Time               `json:"updated_at"`
}

// NewMentorshipRequestResponse maps a loaded request to its response.
func NewMentorshipRequestResponse(r *models.MentorshipRequest) MentorshipRequestResponse {
	resp := MentorshipRequestResponse{
		ID:                     r.ID,
		Student:                r.StudentID,
		Alumni:                 r.AlumniID,
		Message:                r.Message,
		MentorshipTypes:        make([]int64, 0, len(r.MentorshipTypes)),
		MentorshipTypesDetails: r.MentorshipTypes,
		Status:                 r.Status,
		RequestedAt:            r.RequestedAt,
		UpdatedAt:              r.UpdatedAt,
	}
	if resp.MentorshipTypesDetails == nil {
		resp.MentorshipTypesDetails = []models.MentorshipType{}
	}
	for _, t := range r.MentorshipTypes {
		resp.MentorshipTypes = append(resp.MentorshipTypes, t.ID)
	}
	if s := r.Student; s != nil {
		resp.StudentName = s.Username
		resp.StudentFullName = s.FullName()
		resp.StudentDept = s.Degree
		resp.StudentImage = s.Image
	}
	if a := r.Alumni; a != nil {
		resp.AlumniName = a.Username
		resp.AlumniFullName = a.FullName()
		resp.AlumniCompany = a.Company
		resp.AlumniRole = a.JobTitle
		resp.AlumniImage = a.Image
	}
	return resp
}

// CreateActivityRequest is accepted as JSON or multipart form; File is bound separately.
type CreateActivityRequest struct {
	MentorshipRequest int64   `json:"mentorship_request" form:"mentorship_request" binding:"required,min=1"`
	Title             string  `json:"title" form:"title" binding:"required,max=200,singleline"`
	Description       *string `json:"description" form:"description"`
	Status            string  `json:"status" form:"status" binding:"omitempty,oneof=pending in_progress completed scheduled"`
	Date              string  `json:"date" form:"date" binding:"omitempty"`
	MeetingLink       string  `json:"meeting_link" form:"meeting_link" binding:"omitempty,url,max=200"`
}

// ToModel converts the request; Date accepts RFC 3339 or "2006-01-02T15:04".
func (r *CreateActivityRequest) ToModel() (*models.MentorshipActivity, error) {
	a := &models.MentorshipActivity{
		MentorshipRequestID: r.MentorshipRequest,
		Title:               r.Title,
		Description:         r.Description,
		Status:              models.ActivityStatus(r.Status),
	}
	if a.Status == "" {
		a.Status = models.ActivityPending
	}
	if r.MeetingLink != "" {
		link := r.MeetingLink
		a.MeetingLink = &link
	}
	if r.Date != "" {
		d, err := parseDateTime(r.Date)
		if err != nil {
			return nil, apperrors.NewValidationError("Validation failed", map[string]string{
				"date": "Datetime has wrong format. Use RFC 3339, e.g. 2025-06-01T18:30:00Z.",
			})
		}
		a.Date = &d
	}
	return a, nil
}

func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04", s, time.UTC)
}

// DashboardStatsResponse summarises an alumni's mentoring.
type DashboardStatsResponse struct {
	TotalMentees  int     `json:"total_mentees" example:"4"`
	HoursMentored int     `json:"hours_mentored" example:"12"`
	AvgRating     float64 `json:"avg_rating" example:"4.9"`
	SuccessRate   string  `json:"success_rate" example:"80%"`
}
