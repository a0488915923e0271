package domain

import "time"

// Group is a named set of users that roles can be granted to.
type Group struct {
	ID          string
	Title       string
	Description string
	CreatedAt   time.Time
}

// LocalRole is a role granted to a user or group on a single content item.
type LocalRole struct {
	PrincipalID string
	ObjectUID   string
	Role        Role
}
