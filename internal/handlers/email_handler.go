package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aircooling/backoffice/internal/audit"
	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/httpresp"
	"github.com/aircooling/backoffice/internal/logging"
	"github.com/aircooling/backoffice/internal/usecase/email"
)

type EmailHandler struct {
	deps Deps
}

func NewEmailHandler(deps Deps) *EmailHandler {
	return &EmailHandler{deps: deps}
}

func (h *EmailHandler) BookingConfirmation(c *gin.Context) {
	id := identity(c)

	var in email.BookingConfirmationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Corps de requête invalide.")
		return
	}

	res, err := h.deps.bookingConfirmation().Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if res.Skipped {
		httpresp.OK(c, gin.H{"skipped": true})
		return
	}

	// The email is already out; a missing audit row only gets logged.
	if err := audit.New(id.Client).Log(c.Request.Context(), audit.Event{
		UserID:   id.UserID(),
		Action:   "booking_confirmation_sent",
		Entity:   "appointment",
		EntityID: in.TrackingID,
		Metadata: map[string]string{"to": res.To},
	}); err != nil {
		logging.FromContext(c).Warn("audit_write_failed", zap.Error(err))
	}

	httpresp.OK(c, gin.H{"sent": true, "to": res.To})
}
