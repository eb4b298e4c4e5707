package domain

import (
	"errors"
	"time"
)

// User represents a system user that owns accounts
type User struct {
	ID        string
	Username  string
	FirstName string
	LastName  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
	Active    bool
}

// DisplayName is the name shown on transaction detail views
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// Role represents a user's access level
type Role string

const (
	// RoleAdmin has full access to all operations
	RoleAdmin Role = "admin"

	// RoleOperator can create transfers and view listings, but cannot delete
	RoleOperator Role = "operator"

	// RoleViewer can only view resources, no mutations
	RoleViewer Role = "viewer"
)

// Valid roles
var validRoles = map[Role]bool{
	RoleAdmin:    true,
	RoleOperator: true,
	RoleViewer:   true,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanCreateTransaction checks if the role can create transfers
func (r Role) CanCreateTransaction() bool {
	return r == RoleAdmin || r == RoleOperator
}

// CanDeleteTransaction checks if the role can soft-delete transactions
func (r Role) CanDeleteTransaction() bool {
	return r == RoleAdmin
}

// CanViewTransactions checks if the role can view listings and details
func (r Role) CanViewTransactions() bool {
	// All authenticated users can view
	return r.IsValid()
}

// Authentication errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)
