package models

import "time"

// Event is a campus event; registrations live in event_registrations.
type Event struct {
	ID                int64         `json:"id" db:"id"`
	Title             string        `json:"title" db:"title"`
	Description       string        `json:"description" db:"description"`
	Date              string        `json:"date" db:"event_date"` // YYYY-MM-DD
	Time              string        `json:"time" db:"event_time"` // HH:MM:SS
	Location          string        `json:"location" db:"location"`
	Type              EventType     `json:"type" db:"type"`
	OrganizerID       int64         `json:"organizer" db:"organizer_id"`
	OrganizerName     string        `json:"organizer_name" db:"organizer_name"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`
	ParticipantsCount int           `json:"participants_count" db:"participants_count"`
	IsRegistered      bool          `json:"is_registered" db:"is_registered"`
	Participants      []UserSummary `json:"participants,omitempty" db:"-"`
}
