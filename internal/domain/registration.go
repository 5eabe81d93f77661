package domain

import "time"

// Registration records that a student signed up for an event. At most one
// registration exists per (event, student) pair; the database enforces it.
type Registration struct {
	ID           string
	EventID      string
	StudentID    string
	RegisteredAt time.Time
}

// RegisteredEvent is a registration joined with its event summary, used by
// the student my-events view and the admin student directory.
type RegisteredEvent struct {
	RegistrationID string
	RegisteredAt   time.Time
	Event          Event
}
