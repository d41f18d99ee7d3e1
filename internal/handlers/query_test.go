package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aircooling/backoffice/internal/httperr"
)

func TestParseLimit(t *testing.T) {
	n, err := parseLimit("")
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = parseLimit("25")
	require.NoError(t, err)
	require.Equal(t, 25, n)

	for _, raw := range []string{"0", "-1", "ten", "2.5"} {
		_, err := parseLimit(raw)
		require.Error(t, err, raw)
		require.Equal(t, "invalid_limit", httperr.From(err).Code)
	}
}

func TestParseBound(t *testing.T) {
	b, err := parseBound("", "from", false)
	require.NoError(t, err)
	require.Nil(t, b)

	lower, err := parseBound("2026-03-29", "from", false)
	require.NoError(t, err)
	upper, err := parseBound("2026-03-29", "to", true)
	require.NoError(t, err)
	// DST starts that day in Brussels: the local day is 23 hours long.
	require.Equal(t, 23*time.Hour, upper.Sub(*lower))

	exact, err := parseBound("2026-10-19T08:30:00Z", "to", true)
	require.NoError(t, err)
	require.True(t, exact.Equal(time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)))

	_, err = parseBound("19-10-2026", "to", true)
	require.Equal(t, "invalid_to", httperr.From(err).Code)
}
