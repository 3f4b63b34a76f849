package models

// RoleType defines the user role type. It is fixed at signup.
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleAlumni  RoleType = "alumni"
)

// Valid reports whether r is a known role.
func (r RoleType) Valid() bool {
	return r == RoleStudent || r == RoleAlumni
}

// RequestStatus is the lifecycle state of a mentorship request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestRejected  RequestStatus = "rejected"
	RequestCancelled RequestStatus = "cancelled"
)

// IsTerminal reports whether no transition leaves s.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestAccepted || s == RequestRejected || s == RequestCancelled
}

// CanTransitionTo reports whether s -> next is an edge of the request state machine.
// Only pending requests move, and only into a terminal state.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	return s == RequestPending && next.IsTerminal()
}

// ActivityStatus is the status of a mentorship activity. Any value may be set on creation.
type ActivityStatus string

const (
	ActivityPending    ActivityStatus = "pending"
	ActivityInProgress ActivityStatus = "in_progress"
	ActivityCompleted  ActivityStatus = "completed"
	ActivityScheduled  ActivityStatus = "scheduled"
)

func (s ActivityStatus) Valid() bool {
	switch s {
	case ActivityPending, ActivityInProgress, ActivityCompleted, ActivityScheduled:
		return true
	}
	return false
}

// EventType tells whether Location is a URL or an address.
type EventType string

const (
	EventOnline  EventType = "online"
	EventOffline EventType = "offline"
)

// JobType classifies a job posting.
type JobType string

const (
	JobFullTime   JobType = "full_time"
	JobInternship JobType = "internship"
	JobContract   JobType = "contract"
)

// ReferralStatus is the status of a referral request as set by the job poster.
type ReferralStatus string

const (
	ReferralPending  ReferralStatus = "pending"
	ReferralViewed   ReferralStatus = "viewed"
	ReferralReferred ReferralStatus = "referred"
	ReferralRejected ReferralStatus = "rejected"
)
