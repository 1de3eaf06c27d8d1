package domain

import "time"

// StaffProfile carries the display fields for a staff or admin Principal.
// It is 1:1 with its principal row.
type StaffProfile struct {
	PrincipalID string
	Name        string
	Username    string
	Phone       string
	Position    string
	IsAdmin     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
