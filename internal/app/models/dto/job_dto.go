package dto

import "github.com/gradnexus/campusconnect/internal/app/models"

// JobRequest is the body for creating or replacing a job posting.
type JobRequest struct {
	Title       string `json:"title" binding:"required,max=200,singleline" example:"Backend Engineer"`
	Company     string `json:"company" binding:"required,max=200" example:"Acme"`
	Location    string `json:"location" binding:"required,max=200" example:"Remote"`
	Description string `json:"description" binding:"required"`
	JobType     string `json:"job_type" binding:"omitempty,oneof=full_time internship contract" example:"full_time"`
	Link        string `json:"link" binding:"omitempty,url,max=200"`
}

// ToModel builds the job posted by posterID; job_type defaults to full_time.
func (r *JobRequest) ToModel(posterID int64) *models.Job {
	j := &models.Job{
		Title:       r.Title,
		Company:     r.Company,
		Location:    r.Location,
		Description: r.Description,
		JobType:     models.JobType(r.JobType),
		PostedBy:    posterID,
	}
	if j.JobType == "" {
		j.JobType = models.JobFullTime
	}
	if r.Link != "" {
		link := r.Link
		j.Link = &link
	}
	return j
}

// CreateReferralRequest is the multipart form of a referral request; the resume
// file is bound separately.
type CreateReferralRequest struct {
	Job     int64  `form:"job" json:"job" binding:"required,min=1"`
	Message string `form:"message" json:"message"`
}

// UpdateReferralStatusRequest is sent by the job poster.
type UpdateReferralStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending viewed referred rejected" example:"viewed"`
}
