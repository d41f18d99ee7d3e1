package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aircooling/backoffice/internal/backend"
	"github.com/aircooling/backoffice/internal/guard"
	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/logging"
	"github.com/aircooling/backoffice/internal/monitoring"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) httperr.Envelope {
	t.Helper()
	var env httperr.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// -------- request id / logger --------

func TestRequestLoggerSetsCorrelationID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))

	var seen string
	r.GET("/x", func(c *gin.Context) {
		seen = logging.RequestID(c)
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NotEmpty(t, seen)
	require.Equal(t, seen, rec.Header().Get(HeaderRequestID))

	// a valid incoming id is kept
	const incoming = "0b9f6a1e-3c1d-4a7e-9f43-2d7c1b6d5a10"
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, incoming)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, incoming, seen)

	// garbage is replaced
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "<script>")
	r.ServeHTTP(httptest.NewRecorder(), req)
	require.NotEqual(t, "<script>", seen)
}

// -------- recovery --------

func TestRecoveryWritesInternalEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	require.False(t, env.OK)
	require.Equal(t, "internal_error", env.Code)
	require.Equal(t, rec.Header().Get(HeaderRequestID), env.RequestID)
}

func TestRecoveredPanicIsReportedAndCounted(t *testing.T) {
	var captured []*sentry.Event
	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: func(ev *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			captured = append(captured, ev)
			return nil
		},
	})
	require.NoError(t, err)
	sentry.CurrentHub().BindClient(client)
	t.Cleanup(func() { sentry.CurrentHub().BindClient(nil) })

	m := monitoring.New("test")
	r := gin.New()
	r.Use(Observability(zap.NewNop(), m)...)
	r.GET("/api/boom", func(c *gin.Context) { panic("kaboom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal_error", decodeEnvelope(t, rec).Code)
	require.Len(t, captured, 1)
	require.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/api/boom", "500")))
}

// -------- cors --------

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://admin.aircooling.be"}))
	r.GET("/api/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
	req.Header.Set("Origin", "https://admin.aircooling.be")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, "https://admin.aircooling.be", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/x", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

// -------- metrics --------

func TestMetricsUsesRouteTemplate(t *testing.T) {
	m := monitoring.New("test")
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/admin/crm/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/admin/crm/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Contains(t, rec.Body.String(), `route="/api/admin/crm/:id"`)
	require.Contains(t, rec.Body.String(), `route="unmatched"`)
}

// -------- rate limit --------

type memCounter struct {
	n    int64
	keys []string
	err  error
}

func (m *memCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.keys = append(m.keys, key)
	m.n++
	return m.n, nil
}

func TestRateLimit(t *testing.T) {
	counter := &memCounter{}

	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.POST("/api/bookings", RateLimit(counter, 2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", nil))
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			require.Equal(t, "rate_limited", decodeEnvelope(t, rec).Code)
			require.Equal(t, "60", rec.Header().Get("Retry-After"))
		}
	}
	require.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
	require.Contains(t, counter.keys[0], "ratelimit:/api/bookings:192.0.2.1:")
}

func TestRateLimitSubSecondWindow(t *testing.T) {
	counter := &memCounter{}

	r := gin.New()
	r.POST("/x", RateLimit(counter, 1, 500*time.Millisecond), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	var rec *httptest.ResponseRecorder
	require.NotPanics(t, func() {
		for i := 0; i < 2; i++ {
			rec = httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))
		}
	})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "1", rec.Header().Get("Retry-After"))
	require.Len(t, counter.keys, 2)
}

func TestRetryAfterRoundsUp(t *testing.T) {
	require.Equal(t, 1, retryAfter(200*time.Millisecond))
	require.Equal(t, 2, retryAfter(1500*time.Millisecond))
	require.Equal(t, 60, retryAfter(time.Minute))
}

func TestRateLimitFailsOpen(t *testing.T) {
	r := gin.New()
	r.POST("/x", RateLimit(&memCounter{err: errors.New("redis down")}, 1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))
		require.Equal(t, http.StatusCreated, rec.Code)
	}
}

func TestRateLimitDisabledWithoutCounter(t *testing.T) {
	r := gin.New()
	r.POST("/x", RateLimit(nil, 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusCreated) })
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))
		require.Equal(t, http.StatusCreated, rec.Code)
	}
}

// -------- session refresh --------

type countingAuth struct {
	gets      int
	refreshes int
	fresh     *backend.Session
}

func (a *countingAuth) GetUser(context.Context, string) (*backend.User, error) {
	a.gets++
	return &backend.User{ID: "u1"}, nil
}

func (a *countingAuth) RefreshSession(context.Context, string) (*backend.Session, error) {
	a.refreshes++
	return a.fresh, nil
}

func TestSkipSessionRefresh(t *testing.T) {
	for _, p := range []string{
		"/_next/static/chunks/main.js",
		"/_next/image",
		"/favicon.ico",
		"/static/app.css",
		"/assets/fonts/inter.woff2",
		"/images/hero.webp",
		"/logo.SVG.svg",
	} {
		require.True(t, SkipSessionRefresh(p), p)
	}
	for _, p := range []string{"/", "/fr/contact", "/nl/afspraak", "/api/appointments", "/api/plans"} {
		require.False(t, SkipSessionRefresh(p), p)
	}
}

func TestSessionRefreshRotatesCookie(t *testing.T) {
	auth := &countingAuth{fresh: &backend.Session{
		AccessToken: "tok-2", RefreshToken: "r2", ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}}
	f := backend.NewFactory(backend.Options{Auth: auth, ProjectURL: "https://abcd.supabase.co"})

	r := gin.New()
	r.Use(SessionRefresh(f))
	r.GET("/*path", func(c *gin.Context) { c.Status(http.StatusOK) })

	stale, err := backend.EncodeSession(&backend.Session{
		AccessToken: "tok-1", RefreshToken: "r1", ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/fr/contact", nil)
	req.AddCookie(&http.Cookie{Name: f.CookieName(), Value: stale[0]})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, auth.refreshes)
	require.NotEmpty(t, rec.Result().Cookies())

	// static paths never reach the auth server
	req = httptest.NewRequest(http.MethodGet, "/_next/static/app.js", nil)
	req.AddCookie(&http.Cookie{Name: f.CookieName(), Value: stale[0]})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, auth.refreshes)
	require.Equal(t, 1, auth.gets)
	require.Empty(t, rec.Result().Cookies())
}

func TestSessionRefreshNeverBlocks(t *testing.T) {
	f := backend.NewFactory(backend.Options{Auth: &countingAuth{}, ProjectURL: "https://abcd.supabase.co"})

	r := gin.New()
	r.Use(SessionRefresh(f))
	r.GET("/fr", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/fr", nil)
	req.AddCookie(&http.Cookie{Name: f.CookieName(), Value: "base64-garbage!!"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

// -------- auth --------

type metaAuth struct{}

func (metaAuth) GetUser(_ context.Context, token string) (*backend.User, error) {
	if token == "tok-admin" {
		return &backend.User{ID: "u-admin", UserMetadata: map[string]any{"role": "admin"}}, nil
	}
	return &backend.User{ID: "u-client", UserMetadata: map[string]any{"role": "client"}}, nil
}

func (metaAuth) RefreshSession(context.Context, string) (*backend.Session, error) {
	return nil, errors.New("unused")
}

func TestRequireRole(t *testing.T) {
	f := backend.NewFactory(backend.Options{Auth: metaAuth{}, ProjectURL: "https://abcd.supabase.co"})

	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/api/appointments", RequireRole(guard.NewAdmin(f)), func(c *gin.Context) {
		id := guard.FromContext(c)
		c.JSON(http.StatusOK, gin.H{"user": id.UserID(), "role": id.Role})
	})

	call := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
		if token != "" {
			v, err := backend.EncodeSession(&backend.Session{AccessToken: token, ExpiresAt: time.Now().Add(time.Hour).Unix()})
			require.NoError(t, err)
			req.AddCookie(&http.Cookie{Name: f.CookieName(), Value: v[0]})
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := call("")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "unauthenticated", decodeEnvelope(t, rec).Code)

	rec = call("tok-client")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "forbidden", decodeEnvelope(t, rec).Code)

	rec = call("tok-admin")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"user":"u-admin","role":"admin"}`, rec.Body.String())
}
