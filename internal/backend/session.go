package backend

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	cookiePrefix    = "base64-"
	cookieChunkSize = 3180
	cookieMaxAge    = 400 * 24 * time.Hour
	expiryMargin    = 10 * time.Second
)

var ErrNoSession = errors.New("backend: no session")

type User struct {
	ID           string         `json:"id"`
	Aud          string         `json:"aud"`
	Role         string         `json:"role"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	UserMetadata map[string]any `json:"user_metadata"`
	AppMetadata  map[string]any `json:"app_metadata"`
}

// MetadataString reads a string claim from user_metadata.
func (u *User) MetadataString(key string) string {
	if u == nil || u.UserMetadata == nil {
		return ""
	}
	s, _ := u.UserMetadata[key].(string)
	return s
}

type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user,omitempty"`
}

// Expired reports whether the access token is past (or within a few seconds
// of) its expiry. Without expires_at the token's own exp claim is used.
func (s *Session) Expired(now time.Time) bool {
	exp := s.ExpiresAt
	if exp == 0 {
		claims, err := unverifiedClaims(s.AccessToken)
		if err != nil {
			return true
		}
		t, err := claims.GetExpirationTime()
		if err != nil || t == nil {
			return true
		}
		exp = t.Unix()
	}
	return !now.Add(expiryMargin).Before(time.Unix(exp, 0))
}

// CookieName derives the session cookie name from the project URL, e.g.
// https://abcd.supabase.co -> sb-abcd-auth-token.
func CookieName(projectURL string) string {
	ref := "local"
	if u, err := url.Parse(projectURL); err == nil && u.Hostname() != "" {
		ref = strings.Split(u.Hostname(), ".")[0]
	}
	return "sb-" + ref + "-auth-token"
}

// EncodeSession serialises a session into cookie chunks, in order.
func EncodeSession(s *Session) ([]string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	value := cookiePrefix + base64.RawURLEncoding.EncodeToString(raw)

	var chunks []string
	for len(value) > cookieChunkSize {
		chunks = append(chunks, value[:cookieChunkSize])
		value = value[cookieChunkSize:]
	}
	return append(chunks, value), nil
}

func DecodeSession(value string) (*Session, error) {
	var raw []byte
	if strings.HasPrefix(value, cookiePrefix) {
		b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(value[len(cookiePrefix):], "="))
		if err != nil {
			return nil, fmt.Errorf("decode session cookie: %w", err)
		}
		raw = b
	} else {
		raw = []byte(value)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse session cookie: %w", err)
	}
	if s.AccessToken == "" {
		return nil, ErrNoSession
	}
	return &s, nil
}

// readSession loads the session from either a single cookie or numbered
// chunks name.0, name.1, ...
func readSession(r *http.Request, name string) (*Session, error) {
	if c, err := r.Cookie(name); err == nil && c.Value != "" {
		return DecodeSession(c.Value)
	}

	var b strings.Builder
	for i := 0; ; i++ {
		c, err := r.Cookie(name + "." + strconv.Itoa(i))
		if err != nil {
			break
		}
		b.WriteString(c.Value)
	}
	if b.Len() == 0 {
		return nil, ErrNoSession
	}
	return DecodeSession(b.String())
}

// sessionCookies returns the Set-Cookie values for s and expiries for every
// stale cookie of the same family present on the request.
func sessionCookies(r *http.Request, name string, s *Session) ([]*http.Cookie, error) {
	secure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")

	fresh := map[string]string{}
	if s != nil {
		chunks, err := EncodeSession(s)
		if err != nil {
			return nil, err
		}
		if len(chunks) == 1 {
			fresh[name] = chunks[0]
		} else {
			for i, ch := range chunks {
				fresh[name+"."+strconv.Itoa(i)] = ch
			}
		}
	}

	var out []*http.Cookie
	for _, c := range r.Cookies() {
		if !isFamily(c.Name, name) {
			continue
		}
		if _, keep := fresh[c.Name]; keep {
			continue
		}
		out = append(out, &http.Cookie{
			Name: c.Name, Value: "", Path: "/", MaxAge: -1,
			SameSite: http.SameSiteLaxMode, Secure: secure,
		})
	}

	names := make([]string, 0, len(fresh))
	for n := range fresh {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		out = append(out, &http.Cookie{
			Name:     n,
			Value:    fresh[n],
			Path:     "/",
			MaxAge:   int(cookieMaxAge.Seconds()),
			SameSite: http.SameSiteLaxMode,
			Secure:   secure,
		})
	}
	return out, nil
}

func isFamily(cookie, name string) bool {
	if cookie == name {
		return true
	}
	if !strings.HasPrefix(cookie, name+".") {
		return false
	}
	_, err := strconv.Atoi(cookie[len(name)+1:])
	return err == nil
}

// rewriteRequestCookies applies cookie changes to the in-flight request so
// handlers further down the chain see the refreshed session.
func rewriteRequestCookies(r *http.Request, changes []*http.Cookie) {
	byName := map[string]*http.Cookie{}
	for _, c := range changes {
		byName[c.Name] = c
	}

	var kept []string
	for _, c := range r.Cookies() {
		if _, changed := byName[c.Name]; changed {
			continue
		}
		kept = append(kept, (&http.Cookie{Name: c.Name, Value: c.Value}).String())
	}
	for _, c := range changes {
		if c.MaxAge < 0 {
			continue
		}
		kept = append(kept, (&http.Cookie{Name: c.Name, Value: c.Value}).String())
	}

	r.Header.Del("Cookie")
	if len(kept) > 0 {
		r.Header.Set("Cookie", strings.Join(kept, "; "))
	}
}

func unverifiedClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
