package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResendSender(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		if got.To[0] == "bounce@example.be" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]string{"name": "validation_error", "message": "invalid to"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "em_1"})
	}))
	defer srv.Close()

	s := NewResendSender("re_test", srv.Client()).WithBaseURL(srv.URL + "/")

	err := s.Send(context.Background(), Message{
		From: "Aircooling <noreply@aircooling.be>", To: []string{"jan@example.be"},
		Subject: "hello", HTML: "<p>hi</p>",
	})
	require.NoError(t, err)
	require.Equal(t, "hello", got.Subject)

	err = s.Send(context.Background(), Message{To: []string{"bounce@example.be"}})
	var se *SendError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusUnprocessableEntity, se.Status)
	require.Equal(t, "validation_error", se.Name)
}

func TestLogSender(t *testing.T) {
	require.NoError(t, NewLogSender(zap.NewNop()).Send(context.Background(), Message{To: []string{"x@y.be"}}))
}

func TestRenderBookingConfirmation(t *testing.T) {
	fr, err := RenderBookingConfirmation(BookingConfirmation{
		ClientName:      "Marie Dubois",
		AppointmentDate: "2026-11-03",
		AppointmentSlot: "10:00-12:00",
		ServiceType:     "Entretien climatisation",
		Address:         "Rue Neuve 1, 1000 Bruxelles",
		TrackingID:      "01JBOOK",
	})
	require.NoError(t, err)
	require.Contains(t, fr.Subject, "Entretien climatisation")
	require.Contains(t, fr.Subject, "Confirmation")
	require.Contains(t, fr.HTML, "<strong>Entretien climatisation</strong>")
	require.Contains(t, fr.HTML, "mardi 3 novembre 2026")
	require.Contains(t, fr.HTML, "Rue Neuve 1, 1000 Bruxelles")
	require.Contains(t, fr.HTML, "01JBOOK")

	nl, err := RenderBookingConfirmation(BookingConfirmation{
		ClientName: "Jan", AppointmentDate: "2026-11-03", AppointmentSlot: "08:00-10:00",
		ServiceType: "Installatie", Locale: "nl",
	})
	require.NoError(t, err)
	require.Equal(t, "Bevestiging van uw afspraak: Installatie", nl.Subject)
	require.Contains(t, nl.HTML, "dinsdag 3 november 2026")
	require.NotContains(t, nl.HTML, "Adres")
}

func TestRenderEscapesUserInput(t *testing.T) {
	r, err := RenderBookingConfirmation(BookingConfirmation{
		ClientName:      "<script>alert(1)</script>",
		AppointmentDate: "demain",
		AppointmentSlot: "08:00-10:00",
		ServiceType:     "[clic](http://evil.example)\nBcc: x",
	})
	require.NoError(t, err)
	require.NotContains(t, r.HTML, "<script>")
	require.NotContains(t, r.HTML, `href="http://evil.example"`)
	require.NotContains(t, r.Subject, "\n")
	require.Contains(t, r.HTML, "demain")
}
