package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aircooling/backoffice/internal/guard"
	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/timezone"
	"github.com/aircooling/backoffice/internal/validators"
)

// --------------------------------------------------
// Query parsing
// --------------------------------------------------

// parseLimit returns 0 for an absent limit so the use case applies its
// default.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, httperr.New(httperr.KindValidation, "invalid_limit", "Paramètre limit invalide.")
	}
	return n, nil
}

// parseBound accepts YYYY-MM-DD (local midnight) or RFC3339. A date-only
// upper bound moves to the next midnight so the whole day is included.
func parseBound(raw, name string, upper bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if d, err := timezone.ParseDate(raw); err == nil {
		if upper {
			d = d.AddDate(0, 0, 1)
		}
		return &d, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	return nil, httperr.New(httperr.KindValidation, "invalid_"+name, "Paramètre "+name+" invalide.")
}

// parseID rejects malformed ids before they reach Postgres.
func parseID(raw, name string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !validators.IsUUID(raw) {
		return "", httperr.New(httperr.KindValidation, "invalid_id", "Identifiant "+name+" invalide.")
	}
	return raw, nil
}

// identity is set by the auth middleware on every guarded route.
func identity(c *gin.Context) *guard.Identity {
	id := guard.FromContext(c)
	if id == nil {
		panic("handlers: guarded route without identity")
	}
	return id
}
