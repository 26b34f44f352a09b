package models

import "time"

type RegistrationStatus string

const (
	StatusPending  RegistrationStatus = "pending"
	StatusAccepted RegistrationStatus = "accepted"
	StatusRejected RegistrationStatus = "rejected"
)

func (s RegistrationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// InitialStatus is the status a fresh registration starts in for the mode.
func InitialStatus(mode RegistrationMode) RegistrationStatus {
	if mode == ModeOpen {
		return StatusAccepted
	}
	return StatusPending
}

type Registration struct {
	ID           string             `json:"id"`
	EventID      string             `json:"event_id"`
	UserID       string             `json:"user_id"`
	Mode         RegistrationMode   `json:"registration_mode"`
	PaymentProof *string            `json:"payment_proof"`
	Ticket       string             `json:"ticket"`
	Status       RegistrationStatus `json:"status"`
	IsUsed       bool               `json:"is_used"`
	UsedAt       *time.Time         `json:"used_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	Responses    []Response         `json:"responses,omitempty"`
}

type Response struct {
	ID             string `json:"id"`
	RegistrationID string `json:"registration_id"`
	QuestionID     string `json:"question_id"`
	UserID         string `json:"user_id"`
	Answer         string `json:"answer"`
}

// Attendee is a roster row: a registration joined with the profile of its user.
type Attendee struct {
	RegistrationID string             `json:"registration_id"`
	UserID         string             `json:"user_id"`
	FullName       string             `json:"full_name"`
	RollNumber     string             `json:"roll_number"`
	Year           string             `json:"year"`
	Branch         string             `json:"branch"`
	Status         RegistrationStatus `json:"status"`
	PaymentProof   *string            `json:"payment_proof,omitempty"`
	IsUsed         bool               `json:"is_used"`
	CreatedAt      time.Time          `json:"created_at"`
}

// Redemption is the row state observed by a check-in attempt.
type Redemption struct {
	RegistrationID string             `json:"registration_id"`
	EventID        string             `json:"event_id"`
	UserID         string             `json:"user_id"`
	Status         RegistrationStatus `json:"status"`
	AlreadyUsed    bool               `json:"already_used"`
	UsedAt         *time.Time         `json:"used_at,omitempty"`
}
