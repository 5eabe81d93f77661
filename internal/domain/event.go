package domain

import "time"

type Category string

const (
	CategoryWorkshop  Category = "workshop"
	CategorySymposium Category = "symposium"
	CategoryCultural  Category = "cultural"
	CategorySports    Category = "sports"
	CategorySeminar   Category = "seminar"
	CategoryHackathon Category = "hackathon"
)

// Categories lists every valid event category.
var Categories = []Category{
	CategoryWorkshop,
	CategorySymposium,
	CategoryCultural,
	CategorySports,
	CategorySeminar,
	CategoryHackathon,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Event is a college event open for student registration.
type Event struct {
	ID          string
	Title       string
	Description string
	Category    Category
	Venue       string
	StartDate   time.Time
	EndDate     time.Time
	// MaxParticipants is nil when the event has no capacity limit.
	MaxParticipants *int
	CreatedBy       string
	CreatedAt       time.Time
}

// Ended reports whether the event is over at the given instant.
func (e Event) Ended(now time.Time) bool {
	return !e.EndDate.After(now)
}

// EventWithCount pairs an event with its derived registration count.
type EventWithCount struct {
	Event
	RegisteredCount int
}

// Full reports the advisory client-side fullness check. The authoritative
// check happens inside the registration transaction.
func (e EventWithCount) Full() bool {
	return e.MaxParticipants != nil && e.RegisteredCount >= *e.MaxParticipants
}
