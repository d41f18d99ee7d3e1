package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aircooling/backoffice/internal/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, Envelope, *gin.Context) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(logging.ContextRequestID, "req-123")

	Respond(c, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env, c
}

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindUnauthenticated: http.StatusUnauthorized,
		KindForbidden:       http.StatusForbidden,
		KindValidation:      http.StatusBadRequest,
		KindNotFound:        http.StatusNotFound,
		KindConflict:        http.StatusConflict,
		KindRateLimited:     http.StatusTooManyRequests,
		KindBackend:         http.StatusInternalServerError,
		KindInternal:        http.StatusInternalServerError,
	}
	for kind, status := range cases {
		require.Equal(t, status, kind.Status(), kind)
	}
}

func TestRespondEnvelope(t *testing.T) {
	w, env, c := respond(t, New(KindForbidden, "forbidden", "Accès refusé."))

	require.Equal(t, http.StatusForbidden, w.Code)
	require.False(t, env.OK)
	require.Equal(t, "Accès refusé.", env.Error)
	require.Equal(t, "forbidden", env.Code)
	require.Equal(t, "req-123", env.RequestID)
	require.Empty(t, c.Errors)
}

func TestRespondUnknownErrorIsInternal(t *testing.T) {
	w, env, c := respond(t, errors.New("boom"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "internal_error", env.Code)
	require.Len(t, c.Errors, 1)
}

func TestRespondWrappedErrorKeepsCodeAndMessage(t *testing.T) {
	rule := New(KindValidation, "date_in_past", "Ce créneau est déjà passé.")
	w, env, _ := respond(t, fmt.Errorf("book: %w", rule))

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "date_in_past", env.Code)
	require.Equal(t, "Ce créneau est déjà passé.", env.Error)
}

func TestClassifyBackend(t *testing.T) {
	t.Run("record not found", func(t *testing.T) {
		require.Equal(t, KindNotFound, From(gorm.ErrRecordNotFound).Kind)
	})

	t.Run("row level security", func(t *testing.T) {
		err := fmt.Errorf("query: %w", &pgconn.PgError{Code: "42501"})
		require.Equal(t, KindForbidden, From(err).Kind)
	})

	t.Run("unique violation", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23505"}
		require.Equal(t, KindConflict, From(err).Kind)
	})

	t.Run("malformed uuid is a client error", func(t *testing.T) {
		he := From(fmt.Errorf("lock appointment: %w", &pgconn.PgError{Code: "22P02"}))
		require.Equal(t, KindValidation, he.Kind)
		require.Equal(t, "invalid_id", he.Code)
		require.Equal(t, http.StatusBadRequest, he.Kind.Status())
	})

	t.Run("other postgres errors are backend errors", func(t *testing.T) {
		err := &pgconn.PgError{Code: "57014"}
		require.Equal(t, KindBackend, From(err).Kind)
	})

	t.Run("backend wrapper keeps plain errors as backend", func(t *testing.T) {
		he := Backend("list_failed", errors.New("connection reset"))
		require.Equal(t, KindBackend, he.Kind)
		require.Equal(t, "list_failed", he.Code)
	})
}
