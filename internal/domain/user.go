package domain

import (
	"context"
	"time"
)

// Role is a staff role. Unknown roles are granted nothing.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleCaptain    Role = "CAPTAIN"
	RoleCashier    Role = "CASHIER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleCaptain, RoleCashier:
		return true
	}
	return false
}

// User is a staff account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUserParams carries the fields for a new account. PasswordHash is
// already hashed.
type NewUserParams struct {
	Username     string
	FullName     string
	Role         Role
	PasswordHash string
}

type UserRepository interface {
	// GetByUsername returns ENOTFOUND when the user does not exist.
	GetByUsername(ctx context.Context, username string) (*User, error)
	// Create returns ECONFLICT when the username is taken.
	Create(ctx context.Context, params NewUserParams) (*User, error)
	CountByRole(ctx context.Context, role Role) (int, error)
}
