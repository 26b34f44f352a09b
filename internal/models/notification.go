package models

import "time"

type NotificationType string

const (
	NotifyRegistrationCreated   NotificationType = "registration.created"
	NotifyRegistrationCancelled NotificationType = "registration.cancelled"
	NotifyStatusChanged         NotificationType = "registration.status_changed"
	NotifyTicketRedeemed        NotificationType = "ticket.redeemed"
)

// Notification is a domain event fanned out to the broker and to realtime
// subscribers of the event.
type Notification struct {
	Type       NotificationType   `json:"type"`
	EventID    string             `json:"event_id"`
	EventName  string             `json:"event_name,omitempty"`
	ClubID     string             `json:"club_id,omitempty"`
	UserID     string             `json:"user_id"`
	Status     RegistrationStatus `json:"status,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}
