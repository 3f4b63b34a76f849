package models

import "time"

// Job is a posting published by an alumni user.
type Job struct {
	ID               int64     `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Company          string    `json:"company" db:"company"`
	Location         string    `json:"location" db:"location"`
	Description      string    `json:"description" db:"description"`
	JobType          JobType   `json:"job_type" db:"job_type"`
	Link             *string   `json:"link" db:"link"`
	PostedAt         time.Time `json:"posted_at" db:"posted_at"`
	PostedBy         int64     `json:"posted_by" db:"posted_by"`
	PostedByName     string    `json:"posted_by_name" db:"posted_by_name"`
	PostedByFullName string    `json:"posted_by_full_name" db:"-"`
}

// ReferralRequest is a student's request to be referred for a Job.
type ReferralRequest struct {
	ID              int64          `json:"id" db:"id"`
	JobID           int64          `json:"job" db:"job_id"`
	StudentID       int64          `json:"student" db:"student_id"`
	Message         *string        `json:"message" db:"message"`
	Resume          string         `json:"resume" db:"resume"`
	Status          ReferralStatus `json:"status" db:"status"`
	RequestedAt     time.Time      `json:"requested_at" db:"requested_at"`
	StudentName     string         `json:"student_name" db:"student_name"`
	StudentFullName string         `json:"student_full_name" db:"-"`
	JobTitle        string         `json:"job_title" db:"job_title"`
	Company         string         `json:"company" db:"company"`
	JobPostedBy     int64          `json:"-" db:"job_posted_by"`
}
