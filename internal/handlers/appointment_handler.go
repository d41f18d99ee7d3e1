package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/aircooling/backoffice/internal/domain/appointment"
	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/httpresp"
	"github.com/aircooling/backoffice/internal/logging"
	"github.com/aircooling/backoffice/internal/timezone"
	usecase "github.com/aircooling/backoffice/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	deps Deps
}

func NewAppointmentHandler(deps Deps) *AppointmentHandler {
	return &AppointmentHandler{deps: deps}
}

// ======================================================
// REQUESTS
// ======================================================

type VoucherRequest struct {
	AppointmentID   string `json:"appointmentId"`
	WorkPerformed   string `json:"workPerformed"`
	PartsUsed       string `json:"partsUsed"`
	DurationMinutes int    `json:"durationMinutes"`
	SignedBy        string `json:"signedBy"`
}

// ======================================================
// LIST (admin)
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	id := identity(c)

	var f domain.ListFilter

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		st, ok := domain.ParseStatus(raw)
		if !ok {
			httperr.BadRequest(c, "invalid_status", "Statut inconnu.")
			return
		}
		f.Status = st
	}

	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	f.Limit = limit

	out, err := usecase.NewListAppointments(h.deps.Repos.Appointments(id.Client)).
		Execute(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"appointments": out})
}

// ======================================================
// LIST BY DATE (tech)
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	id := identity(c)

	day := timezone.Now()
	if raw := c.Query("date"); raw != "" {
		d, err := timezone.ParseDate(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Date invalide. Format attendu : YYYY-MM-DD.")
			return
		}
		day = d
	}

	var techID *string
	if !id.IsAdmin() {
		uid := id.UserID()
		techID = &uid
	}

	out, err := usecase.NewListAppointmentsByDate(h.deps.Repos.Appointments(id.Client)).
		Execute(c.Request.Context(), techID, day)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":         day.Format("2006-01-02"),
		"appointments": out,
	})
}

// ======================================================
// CANCEL (admin)
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id := identity(c)

	apID, err := parseID(c.Param("id"), "de rendez-vous")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := usecase.NewCancelAppointment(h.deps.Repos.Appointments(id.Client)).
		Execute(c.Request.Context(), apID, id.UserID())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"appointment": ap})
}

// ======================================================
// VOUCHER (tech)
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id := identity(c)

	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Corps de requête invalide.")
		return
	}
	if req.AppointmentID != "" {
		if _, err := parseID(req.AppointmentID, "de rendez-vous"); err != nil {
			httperr.Respond(c, err)
			return
		}
	}

	ap, v, err := usecase.NewCompleteAppointment(h.deps.Repos.Appointments(id.Client)).
		Execute(c.Request.Context(), usecase.VoucherInput{
			AppointmentID:   req.AppointmentID,
			TechnicianID:    id.UserID(),
			WorkPerformed:   req.WorkPerformed,
			PartsUsed:       req.PartsUsed,
			DurationMinutes: req.DurationMinutes,
			SignedBy:        req.SignedBy,
			AnyAppointment:  id.IsAdmin(),
		})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"appointment": ap,
		"voucher":     v,
	})
}

// ======================================================
// AVAILABILITY (public)
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Paramètre date requis.")
		return
	}

	slots, err := usecase.NewGetAvailability(timezone.Now).Execute(date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"date": date, "slots": slots})
}

// ======================================================
// BOOK (public)
// ======================================================

// Book runs on the service handle: anonymous visitors cannot read clients
// under row-level security, and get-or-create needs to.
func (h *AppointmentHandler) Book(c *gin.Context) {
	var in usecase.BookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Corps de requête invalide.")
		return
	}
	in.RequestID = logging.RequestID(c)

	res, err := usecase.NewBookAppointment(
		h.deps.Repos.Appointments(h.deps.Factory.Service()),
		h.deps.Events,
		h.deps.bookingConfirmation(),
		h.deps.Metrics,
		logging.FromContext(c),
	).Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"appointment": res.Appointment,
		"trackingId":  res.Appointment.TrackingID,
		"emailSent":   res.EmailSent,
	})
}
