package directory

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/lexgate/lexgate/internal/platform/httpx"
)

// MemoryDirectory serves a fixed set of accounts hashed at construction.
// Lookups are read-only, so no locking is needed after NewMemoryDirectory
// returns.
type MemoryDirectory struct {
	byEmail map[string]*User
	byID    map[int64]*User
}

// NewMemoryDirectory builds a directory from the given users, hashing each
// password with bcrypt cost 12.
func NewMemoryDirectory(users []SeedUser) (*MemoryDirectory, error) {
	d := &MemoryDirectory{
		byEmail: make(map[string]*User, len(users)),
		byID:    make(map[int64]*User, len(users)),
	}
	for _, seed := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), 12)
		if err != nil {
			return nil, fmt.Errorf("directory: hash password for %s: %w", seed.Email, err)
		}
		user := &User{
			ID:           seed.ID,
			Name:         seed.Name,
			Email:        seed.Email,
			PasswordHash: string(hash),
			UserType:     seed.UserType,
			Role:         seed.Role,
		}
		d.byEmail[strings.ToLower(seed.Email)] = user
		d.byID[seed.ID] = user
	}
	return d, nil
}

// SeedUser describes an account to provision into a MemoryDirectory.
type SeedUser struct {
	ID       int64
	Name     string
	Email    string
	Password string
	UserType string
	Role     string
}

// DemoUsers returns the demo accounts. Each password derives from the email
// local part so the set stays self-describing in development environments.
func DemoUsers() []SeedUser {
	seeds := []SeedUser{
		{ID: 1, Name: "Demo User", Email: "demo@lawfirm.com", UserType: "firm", Role: RoleLawFirm},
		{ID: 2, Name: "Solo Attorney", Email: "solo@attorney.com", UserType: "solo", Role: RoleSoloPractitioner},
		{ID: 3, Name: "Corporate Counsel", Email: "counsel@corp.com", UserType: "corporate", Role: RoleInHouseCounsel},
	}
	for i := range seeds {
		local, _, _ := strings.Cut(seeds[i].Email, "@")
		seeds[i].Password = titleCase(local) + "@123"
	}
	return seeds
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// FindByEmail looks up a user by email, case-insensitively.
func (d *MemoryDirectory) FindByEmail(ctx context.Context, email string) (*User, error) {
	user, ok := d.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return user, nil
}

// FindByID looks up a user by ID.
func (d *MemoryDirectory) FindByID(ctx context.Context, id int64) (*User, error) {
	user, ok := d.byID[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return user, nil
}

var _ Directory = (*MemoryDirectory)(nil)
