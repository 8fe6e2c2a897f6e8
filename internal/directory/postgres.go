package directory

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lexgate/lexgate/internal/platform/httpx"
)

// PGDirectory implements Directory against PostgreSQL. The gateway only
// reads the users table; provisioning happens elsewhere.
type PGDirectory struct {
	pool *pgxpool.Pool
}

// NewPGDirectory constructs a PostgreSQL-backed directory.
func NewPGDirectory(pool *pgxpool.Pool) *PGDirectory {
	return &PGDirectory{pool: pool}
}

const userColumns = "id, name, email, password_hash, user_type, role"

// FindByEmail fetches a user by email, case-insensitively.
func (d *PGDirectory) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = "SELECT " + userColumns + " FROM users WHERE lower(email) = $1"
	return d.scanUser(d.pool.QueryRow(ctx, query, strings.ToLower(email)))
}

// FindByID fetches a user by ID.
func (d *PGDirectory) FindByID(ctx context.Context, id int64) (*User, error) {
	const query = "SELECT " + userColumns + " FROM users WHERE id = $1"
	return d.scanUser(d.pool.QueryRow(ctx, query, id))
}

func (d *PGDirectory) scanUser(row pgx.Row) (*User, error) {
	var user User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.UserType, &user.Role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

var _ Directory = (*PGDirectory)(nil)
