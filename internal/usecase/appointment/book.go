package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	domain "github.com/aircooling/backoffice/internal/domain/appointment"
	"github.com/aircooling/backoffice/internal/domain/lead"
	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/infra/events"
	"github.com/aircooling/backoffice/internal/models"
	"github.com/aircooling/backoffice/internal/monitoring"
	"github.com/aircooling/backoffice/internal/timezone"
	"github.com/aircooling/backoffice/internal/usecase/email"
	"github.com/aircooling/backoffice/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail"`
	ClientPhone string `json:"clientPhone"`
	Address     string `json:"address"`

	ServiceType string `json:"serviceType"`
	Date        string `json:"date"`
	Slot        string `json:"slot"`
	Notes       string `json:"notes"`
	Locale      string `json:"locale"`

	RequestID string `json:"-"`
}

type BookResult struct {
	Appointment *models.Appointment
	EmailSent   bool
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo    domain.Repository
	events  events.Publisher
	confirm *email.SendBookingConfirmation
	metrics *monitoring.Metrics
	log     *zap.Logger
	now     func() time.Time
}

func NewBookAppointment(
	repo domain.Repository,
	publisher events.Publisher,
	confirm *email.SendBookingConfirmation,
	metrics *monitoring.Metrics,
	log *zap.Logger,
) *BookAppointment {
	return &BookAppointment{
		repo:    repo,
		events:  publisher,
		confirm: confirm,
		metrics: metrics,
		log:     log,
		now:     timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookInput,
) (*BookResult, error) {

	// --------------------------------------------------
	// 1. Required fields
	// --------------------------------------------------
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientEmail = validators.NormalizeEmail(in.ClientEmail)
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
	in.ServiceType = strings.TrimSpace(in.ServiceType)

	if in.ClientName == "" || in.ServiceType == "" || in.Date == "" || in.Slot == "" {
		return nil, httperr.New(httperr.KindValidation, "missing_fields", "Champs obligatoires manquants.")
	}
	if in.ClientEmail == "" && in.ClientPhone == "" {
		return nil, httperr.New(httperr.KindValidation, "missing_contact", "Un e-mail ou un téléphone est requis.")
	}
	if in.ClientEmail != "" && !validators.IsEmail(in.ClientEmail) {
		return nil, httperr.New(httperr.KindValidation, "invalid_email", "Adresse e-mail invalide.")
	}

	// --------------------------------------------------
	// 2. Date / slot in Europe/Brussels
	// --------------------------------------------------
	start, err := domain.SlotStart(in.Date, in.Slot)
	if err != nil {
		return nil, err
	}
	if !start.After(uc.now()) {
		return nil, domain.ErrDateInPast
	}

	// --------------------------------------------------
	// 3. Client + appointment
	// --------------------------------------------------
	locale := lead.NormalizeLocale(in.Locale)
	client := &models.Client{
		FullName: in.ClientName,
		Email:    in.ClientEmail,
		Phone:    in.ClientPhone,
		Address:  strings.TrimSpace(in.Address),
		Locale:   locale,
	}

	ap := &models.Appointment{
		ScheduledAt: start,
		Slot:        in.Slot,
		ServiceType: in.ServiceType,
		Status:      string(domain.InitialStatus()),
		Address:     client.Address,
		TrackingID:  ulid.Make().String(),
		Locale:      locale,
		Notes:       strings.TrimSpace(in.Notes),
	}

	if err := uc.repo.Book(ctx, client, ap); err != nil {
		return nil, err
	}
	uc.metrics.Lead("booking")

	// --------------------------------------------------
	// 4. Notifications: neither can undo the booking
	// --------------------------------------------------
	if err := uc.events.Publish(ctx, ap.TrackingID, events.Event{
		Type:       events.LeadBookingCreated,
		OccurredAt: uc.now(),
		RequestID:  in.RequestID,
		Data: map[string]string{
			"appointmentId": ap.ID,
			"trackingId":    ap.TrackingID,
			"serviceType":   ap.ServiceType,
			"slot":          ap.Slot,
			"locale":        ap.Locale,
		},
	}); err != nil {
		uc.log.Warn("lead_event_failed", zap.String("type", events.LeadBookingCreated), zap.Error(err))
	}

	res, err := uc.confirm.Execute(ctx, email.BookingConfirmationInput{
		ClientName:      client.FullName,
		ClientEmail:     in.ClientEmail,
		AppointmentDate: in.Date,
		AppointmentSlot: in.Slot,
		ServiceType:     in.ServiceType,
		Address:         ap.Address,
		TrackingID:      ap.TrackingID,
		Locale:          locale,
	})
	if err != nil {
		uc.log.Warn("booking_confirmation_failed", zap.String("tracking_id", ap.TrackingID), zap.Error(err))
		return &BookResult{Appointment: ap}, nil
	}

	return &BookResult{Appointment: ap, EmailSent: !res.Skipped}, nil
}
