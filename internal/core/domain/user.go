package domain

import (
	"errors"
	"time"
)

// Role is the closed set of roles a user can hold. Roles form a creation
// hierarchy: Admin creates Managers, Managers create Clients, Clients
// create nothing.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleClient  Role = "client"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email is already taken")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidResetToken = errors.New("invalid or expired token")
var ErrManagerHasClients = errors.New("manager still has clients")
var ErrInvalidInput = errors.New("invalid input")

// ParseRole validates a raw role string (e.g. from a token claim).
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleClient:
		return Role(s), true
	}
	return "", false
}

// Creates reports whether a caller with role r may create a user with role
// target.
func (r Role) Creates(target Role) bool {
	switch r {
	case RoleAdmin:
		return target == RoleManager
	case RoleManager:
		return target == RoleClient
	}
	return false
}

// User models an authenticated actor in the system.
//
// ManagerID is set iff Role is client and references the manager that created
// the account. ResetToken and ResetTokenExpires are set and cleared together;
// a cleared or expired pair never authorizes a password change.
type User struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	Role              Role       `json:"role"`
	ManagerID         string     `json:"manager_id,omitempty"`
	ResetToken        string     `json:"-"`
	ResetTokenExpires *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
