package guard

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/aircooling/backoffice/internal/backend"
	"github.com/aircooling/backoffice/internal/httperr"
)

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
	RoleTechnician = "technicien"
)

var (
	AdminRoles = []string{RoleAdmin, RoleSuperAdmin}
	TechRoles  = []string{RoleTechnician, RoleAdmin, RoleSuperAdmin}
)

// Identity is the authorization decision for one request. Client is the
// verified cookie-bound handle; queries made through it run as the user.
type Identity struct {
	User   *backend.User
	Role   string
	Client *backend.Client
}

func (id *Identity) UserID() string {
	if id == nil || id.User == nil {
		return ""
	}
	return id.User.ID
}

func (id *Identity) IsAdmin() bool {
	return id != nil && (id.Role == RoleAdmin || id.Role == RoleSuperAdmin)
}

// RoleResolver decides where a user's role is read from.
type RoleResolver interface {
	ResolveRole(ctx context.Context, u *backend.User) (string, error)
}

type Guard struct {
	factory  *backend.Factory
	resolver RoleResolver
	allowed  []string
}

func New(factory *backend.Factory, resolver RoleResolver, allowed ...string) *Guard {
	return &Guard{
		factory:  factory,
		resolver: resolver,
		allowed:  allowed,
	}
}

// NewAdmin reads the role from the session's user metadata.
func NewAdmin(factory *backend.Factory) *Guard {
	return New(factory, MetadataRoleResolver{}, AdminRoles...)
}

// NewTech reads the role from the profiles table through the service handle.
func NewTech(factory *backend.Factory, profiles ProfileReader) *Guard {
	return New(factory, ProfileRoleResolver{Profiles: profiles}, TechRoles...)
}

// Require resolves the caller's identity. Any introspection failure is
// reported as unauthenticated; it is never retried.
func (g *Guard) Require(c *gin.Context) (*Identity, error) {
	client := g.factory.Server(c.Request)

	u, err := client.GetUser(c.Request.Context())
	if err != nil {
		return nil, httperr.Wrap(
			httperr.KindUnauthenticated,
			"unauthenticated",
			"Authentification requise.",
			err,
		)
	}

	role, err := g.resolver.ResolveRole(c.Request.Context(), u)
	if err != nil {
		return nil, httperr.Wrap(
			httperr.KindForbidden,
			"forbidden",
			"Accès refusé.",
			err,
		)
	}

	if !g.accepts(role) {
		return nil, httperr.New(httperr.KindForbidden, "forbidden", "Accès refusé.")
	}

	return &Identity{User: u, Role: role, Client: client}, nil
}

func (g *Guard) accepts(role string) bool {
	for _, r := range g.allowed {
		if r == role {
			return true
		}
	}
	return false
}

// RequireAdmin is the function form of the admin guard.
func RequireAdmin(c *gin.Context, factory *backend.Factory) (*Identity, error) {
	return NewAdmin(factory).Require(c)
}

// RequireTech is the function form of the technician guard.
func RequireTech(c *gin.Context, factory *backend.Factory, profiles ProfileReader) (*Identity, error) {
	return NewTech(factory, profiles).Require(c)
}

var ErrNoRole = errors.New("guard: no role")
