package dto

import "github.com/gradnexus/campusconnect/internal/app/models"

// EventRequest is the body for creating or replacing an event.
type EventRequest struct {
	Title       string `json:"title" binding:"required,max=200,singleline" example:"Alumni Meetup 2025"`
	Description string `json:"description" binding:"required" example:"Annual meetup"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02" example:"2025-06-01"`
	Time        string `json:"time" binding:"required,eventtime" example:"18:30"`
	Location    string `json:"location" binding:"required,max=200" example:"Main Auditorium"`
	Type        string `json:"type" binding:"required,oneof=online offline" example:"offline"`
}

// ToModel builds the event owned by organizerID.
func (r *EventRequest) ToModel(organizerID int64) *models.Event {
	return &models.Event{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Time:        NormalizeClock(r.Time),
		Location:    r.Location,
		Type:        models.EventType(r.Type),
		OrganizerID: organizerID,
	}
}

// NormalizeClock expands HH:MM to HH:MM:SS.
func NormalizeClock(t string) string {
	if len(t) == len("15:04") {
		return t + ":00"
	}
	return t
}
