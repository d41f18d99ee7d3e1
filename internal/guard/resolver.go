package guard

import (
	"context"

	"github.com/aircooling/backoffice/internal/backend"
)

// MetadataRoleResolver reads user_metadata.role from the session.
type MetadataRoleResolver struct{}

func (MetadataRoleResolver) ResolveRole(_ context.Context, u *backend.User) (string, error) {
	role := u.MetadataString("role")
	if role == "" {
		return "", ErrNoRole
	}
	return role, nil
}

// ProfileReader looks up the role stored on a profile row.
type ProfileReader interface {
	ProfileRole(ctx context.Context, userID string) (string, error)
}

// ProfileRoleResolver reads the role from the user's profile row. A missing
// row is an error.
type ProfileRoleResolver struct {
	Profiles ProfileReader
}

func (r ProfileRoleResolver) ResolveRole(ctx context.Context, u *backend.User) (string, error) {
	role, err := r.Profiles.ProfileRole(ctx, u.ID)
	if err != nil {
		return "", err
	}
	if role == "" {
		return "", ErrNoRole
	}
	return role, nil
}

var (
	_ RoleResolver = MetadataRoleResolver{}
	_ RoleResolver = ProfileRoleResolver{}
)
