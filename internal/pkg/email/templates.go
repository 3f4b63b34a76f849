package email

import (
	"fmt"
	"strings"
	"time"
)

const notSpecified = "Not specified"

// ScheduledSession describes a mentorship session scheduled for a student.
type ScheduledSession struct {
	StudentFirstName string
	MentorFullName   string
	Title            string
	Date             *time.Time
	MeetingLink      *string
	Description      *string
}

// Message renders the notification sent to the student.
func (s ScheduledSession) Message(recipient string) Message {
	date := notSpecified
	if s.Date != nil {
		date = s.Date.UTC().Format("2006-01-02 15:04 MST")
	}
	link := notSpecified
	if s.MeetingLink != nil && *s.MeetingLink != "" {
		link = *s.MeetingLink
	}
	description := ""
	if s.Description != nil {
		description = *s.Description
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", s.StudentFirstName)
	fmt.Fprintf(&b, "Your mentor, %s, has scheduled a new mentorship session for you.\n\n", s.MentorFullName)
	b.WriteString("Details:\n")
	fmt.Fprintf(&b, "- Title: %s\n", s.Title)
	fmt.Fprintf(&b, "- Date/Time: %s\n", date)
	fmt.Fprintf(&b, "- Meeting Link: %s\n\n", link)
	b.WriteString("Message from your mentor:\n")
	b.WriteString(description + "\n\n")
	b.WriteString("Please make sure to attend the session on time.\n\n")
	b.WriteString("Best regards,\nGradNexus Team\n")

	return Message{
		Recipient: recipient,
		Subject:   "New Mentorship Session Scheduled: " + s.Title,
		Body:      b.String(),
	}
}
