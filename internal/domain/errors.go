package domain

import "errors"

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrEventEnded         = errors.New("event has ended")
	ErrEventFull          = errors.New("event is full")
	ErrAlreadyRegistered  = errors.New("already registered for this event")
	ErrTitleRequired      = errors.New("title required")
	ErrDatesRequired      = errors.New("start and end dates required")
	ErrInvalidDateRange   = errors.New("start date must be before end date")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidCapacity    = errors.New("invalid max participants")
	ErrInvalidID          = errors.New("invalid id")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionInvalid     = errors.New("session invalid or expired")
)
