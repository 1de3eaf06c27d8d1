package dto

import "time"

// StatusUpdateRequest payload for the status endpoints. IsActive is a
// pointer so a missing field can be told apart from an explicit false.
type StatusUpdateRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// StatusUpdateResponse reports what the change did. Result is "updated"
// or "no_change" so callers can distinguish an idempotent re-issue from a
// real mutation.
type StatusUpdateResponse struct {
	ID       string `json:"id"`
	Result   string `json:"result"`
	IsActive bool   `json:"isActive"`
}

// StaffUpdateRequest is a partial profile update; absent fields are left
// untouched.
type StaffUpdateRequest struct {
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
	Name     *string `json:"name,omitempty"`
	Username *string `json:"username,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Position *string `json:"position,omitempty"`
	IsAdmin  *bool   `json:"isAdmin,omitempty"`
}

// StaffResponse is the merged account+profile view.
type StaffResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Phone     string    `json:"phone"`
	Position  string    `json:"position"`
	IsAdmin   bool      `json:"isAdmin"`
	UpdatedAt time.Time `json:"updated_at"`
}
