package domain

import "time"

// User is a portal account.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Roles        []Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
