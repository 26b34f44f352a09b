package storage

import "errors"

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrClubNotFound         = errors.New("club not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrRegistrationExists   = errors.New("registration already exists")
	ErrEventFull            = errors.New("no available seats")
)
