package model

import "time"

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User represents a registered platform member
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     string    `json:"image,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserRequest is posted on first sign-in; the insert is idempotent on email
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required,email"`
	Image string `json:"image"`
}

// AccessTokenRequest carries the identity claim exchanged for a session cookie
type AccessTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

// UpdateRoleRequest escalates a user to admin or moderator
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// RoleStatus reports the capability flags for one identity
type RoleStatus struct {
	Admin     bool `json:"admin"`
	Moderator bool `json:"moderator"`
}
