// Package directory exposes read-only lookups against the user directory.
// Accounts are provisioned out of band; nothing in the gateway mutates them.
package directory

import "context"

// Roles recognized by the gateway.
const (
	RoleLawFirm          = "Law Firm"
	RoleSoloPractitioner = "Solo Practitioner"
	RoleInHouseCounsel   = "In-House Counsel"
)

// User represents a directory record.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	UserType     string
	Role         string
}

// Directory defines lookup operations backing authentication.
type Directory interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
}
