package domain

import "time"

// Role enumerates the authority levels known to the back office.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleStaff      Role = "staff"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Valid reports whether the role is one of the known enumeration values.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsBackOffice reports whether the role belongs to internal personnel.
func (r Role) IsBackOffice() bool {
	return r == RoleStaff || r == RoleAdmin || r == RoleSuperAdmin
}

// Principal is an account row in the identity table.
type Principal struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
