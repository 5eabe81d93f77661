package domain

import "time"

// Account is an authenticated identity. The password hash never leaves the
// storage and auth layers.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile carries the display data and role linked to an account.
type Profile struct {
	ID       string
	FullName string
	Email    string
	Role     Role
}
