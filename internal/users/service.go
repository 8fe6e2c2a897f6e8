// Package users serves profile data for authenticated identities.
package users

import (
	"context"

	"github.com/lexgate/lexgate/internal/directory"
)

// Service handles user profile lookups.
type Service struct {
	directory directory.Directory
}

// NewService builds a Service instance.
func NewService(dir directory.Directory) *Service {
	return &Service{directory: dir}
}

// Profile returns the directory record for the given user ID. The record can
// have vanished between token issuance and this call; the directory's
// not-found error propagates unchanged.
func (s *Service) Profile(ctx context.Context, id int64) (*directory.User, error) {
	return s.directory.FindByID(ctx, id)
}
