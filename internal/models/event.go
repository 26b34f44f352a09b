package models

import "time"

type EventStatus string

const (
	EventOpen        EventStatus = "Open"
	EventClosingSoon EventStatus = "Closing Soon"
	EventWaitlist    EventStatus = "Waitlist"
	EventClosed      EventStatus = "Closed"
	EventCancelled   EventStatus = "Cancelled"
)

type RegistrationMode string

const (
	ModeOpen      RegistrationMode = "open"
	ModeSelective RegistrationMode = "selective"
	ModePaid      RegistrationMode = "paid"
)

type Event struct {
	ID                   string           `json:"id"`
	ClubID               string           `json:"club_id"`
	Name                 string           `json:"name"`
	Description          string           `json:"description"`
	StartsAt             time.Time        `json:"starts_at"`
	Location             string           `json:"location"`
	MaxAttendees         *int             `json:"max_attendees"`
	CurrentAttendees     int              `json:"current_attendees"`
	RegistrationDeadline *time.Time       `json:"registration_deadline,omitempty"`
	Status               EventStatus      `json:"status"`
	Mode                 RegistrationMode `json:"registration_mode"`
	PaymentLink          *string          `json:"payment_link,omitempty"`
	IsDeleted            bool             `json:"-"`
	Questions            []Question       `json:"questions,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
}

// AcceptsRegistrations reports whether the lifecycle status and the
// deadline still allow new registrations at now.
func (e *Event) AcceptsRegistrations(now time.Time) bool {
	if e.IsDeleted {
		return false
	}

	switch e.Status {
	case EventClosed, EventCancelled:
		return false
	}

	if e.RegistrationDeadline != nil && now.After(*e.RegistrationDeadline) {
		return false
	}

	return true
}

// IsFull is false for events without a capacity.
func (e *Event) IsFull() bool {
	return e.MaxAttendees != nil && e.CurrentAttendees >= *e.MaxAttendees
}

type Question struct {
	ID       string `json:"id"`
	EventID  string `json:"event_id"`
	Prompt   string `json:"prompt"`
	Position int    `json:"position"`
}
