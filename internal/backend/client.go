package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"
)

type Privilege string

const (
	PrivilegeAnon    Privilege = "anon"
	PrivilegeService Privilege = "service_role"
)

// Querier runs scoped database work. *Client implements it.
type Querier interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type Options struct {
	DB             *gorm.DB
	Auth           AuthAPI
	ProjectURL     string
	AnonKey        string
	ServiceRoleKey string

	// Now is overridable for tests.
	Now func() time.Time
}

// Factory produces backend handles. It holds only shared, immutable
// resources (the connection pool and the auth HTTP client); every handle it
// returns is a fresh value scoped to one privilege level.
type Factory struct {
	opts       Options
	cookieName string
}

func NewFactory(opts Options) *Factory {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Factory{
		opts:       opts,
		cookieName: CookieName(opts.ProjectURL),
	}
}

func (f *Factory) CookieName() string {
	return f.cookieName
}

// Server returns an anonymous handle bound to the caller's session cookie.
// Refreshed tokens are used for the lifetime of the handle but never written
// back.
func (f *Factory) Server(r *http.Request) *Client {
	return &Client{factory: f, privilege: PrivilegeAnon, apiKey: f.opts.AnonKey, req: r}
}

// Service returns an unrestricted handle using the service-role key. It
// carries no session.
func (f *Factory) Service() *Client {
	return &Client{factory: f, privilege: PrivilegeService, apiKey: f.opts.ServiceRoleKey}
}

// Middleware returns a handle bound to both the request and the response so
// a refreshed session is written to the outgoing cookies.
func (f *Factory) Middleware(w http.ResponseWriter, r *http.Request) *Client {
	return &Client{factory: f, privilege: PrivilegeAnon, apiKey: f.opts.AnonKey, req: r, w: w}
}

type Client struct {
	factory   *Factory
	privilege Privilege
	apiKey    string

	req *http.Request
	w   http.ResponseWriter

	session  *Session
	loaded   bool
	verified bool
}

func (c *Client) Privilege() Privilege {
	return c.privilege
}

func (c *Client) currentSession() (*Session, error) {
	if c.loaded {
		if c.session == nil {
			return nil, ErrNoSession
		}
		return c.session, nil
	}
	c.loaded = true
	if c.req == nil {
		return nil, ErrNoSession
	}
	s, err := readSession(c.req, c.factory.cookieName)
	if err != nil {
		return nil, err
	}
	c.session = s
	return s, nil
}

// GetUser is the session-introspection call: it refreshes an expired access
// token when a refresh token is available, then asks the auth server who the
// token belongs to. Any failure means "no authenticated user".
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	if c.privilege == PrivilegeService {
		return nil, ErrNoSession
	}

	s, err := c.currentSession()
	if err != nil {
		return nil, err
	}

	if s.Expired(c.factory.opts.Now()) {
		if s.RefreshToken == "" {
			return nil, ErrNoSession
		}
		fresh, err := c.factory.opts.Auth.RefreshSession(ctx, s.RefreshToken)
		if err != nil {
			// Only a rejected refresh token ends the session. Network and 5xx
			// failures keep the cookies so the next request can retry.
			if isRejected(err) {
				c.session = nil
				c.writeCookies(nil)
			}
			return nil, err
		}
		c.session = fresh
		c.writeCookies(fresh)
		s = fresh
	}

	u, err := c.factory.opts.Auth.GetUser(ctx, s.AccessToken)
	if err != nil {
		var ae *AuthError
		if errors.As(err, &ae) && ae.Status == http.StatusUnauthorized {
			c.session = nil
			c.writeCookies(nil)
		}
		return nil, err
	}
	c.verified = true
	return u, nil
}

func (c *Client) writeCookies(s *Session) {
	if c.w == nil || c.req == nil {
		return
	}
	cookies, err := sessionCookies(c.req, c.factory.cookieName, s)
	if err != nil {
		return
	}
	for _, ck := range cookies {
		http.SetCookie(c.w, ck)
	}
	rewriteRequestCookies(c.req, cookies)
}

// Transaction runs fn inside a database transaction scoped to the handle's
// privilege: the Postgres role and JWT claims are set locally so row-level
// security policies apply to everything fn does.
func (c *Client) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if c.factory.opts.DB == nil {
		return errors.New("backend: database not configured")
	}

	role, claims := c.scope()
	return c.factory.opts.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"SELECT set_config('request.jwt.claims', ?, true), set_config('role', ?, true)",
			claims, role,
		).Error; err != nil {
			return err
		}
		return fn(tx)
	})
}

// scope resolves the Postgres role and claims JSON for this handle. A session
// token is only used once GetUser has confirmed it with the auth server;
// otherwise the handle falls back to the anon key.
func (c *Client) scope() (string, string) {
	token := c.apiKey
	role := string(c.privilege)

	if c.privilege != PrivilegeService && c.verified && c.session != nil {
		token = c.session.AccessToken
		role = "authenticated"
	}

	claims, err := unverifiedClaims(token)
	if err != nil {
		return role, "{}"
	}
	raw, err := json.Marshal(claims)
	if err != nil {
		return role, "{}"
	}
	return role, string(raw)
}

var _ Querier = (*Client)(nil)

func isRejected(err error) bool {
	var ae *AuthError
	if !errors.As(err, &ae) {
		return false
	}
	return ae.Status == http.StatusBadRequest || ae.Status == http.StatusUnauthorized
}
