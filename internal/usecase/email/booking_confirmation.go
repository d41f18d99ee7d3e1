package email

import (
	"context"
	"strings"

	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/mailer"
	"github.com/aircooling/backoffice/internal/monitoring"
	"github.com/aircooling/backoffice/internal/validators"
)

type BookingConfirmationInput struct {
	ClientName      string `json:"clientName"`
	ClientEmail     string `json:"clientEmail"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentSlot string `json:"appointmentSlot"`
	ServiceType     string `json:"serviceType"`
	Address         string `json:"address"`
	TrackingID      string `json:"trackingId"`
	Locale          string `json:"locale"`
}

type Result struct {
	Skipped bool
	To      string
}

type SendBookingConfirmation struct {
	sender  mailer.Sender
	from    string
	metrics *monitoring.Metrics
}

func NewSendBookingConfirmation(
	sender mailer.Sender,
	from string,
	metrics *monitoring.Metrics,
) *SendBookingConfirmation {
	return &SendBookingConfirmation{
		sender:  sender,
		from:    from,
		metrics: metrics,
	}
}

// Execute validates the required fields first. A missing recipient is a
// successful no-op; otherwise exactly one email is sent.
func (uc *SendBookingConfirmation) Execute(
	ctx context.Context,
	in BookingConfirmationInput,
) (*Result, error) {

	if missing := missingFields(in); len(missing) > 0 {
		return nil, httperr.New(
			httperr.KindValidation,
			"missing_fields",
			"Champs obligatoires manquants : "+strings.Join(missing, ", ")+".",
		)
	}

	to := validators.NormalizeEmail(in.ClientEmail)
	if to == "" {
		uc.metrics.Email("skipped")
		return &Result{Skipped: true}, nil
	}
	if !validators.IsEmail(to) {
		return nil, httperr.New(httperr.KindValidation, "invalid_email", "Adresse e-mail invalide.")
	}

	rendered, err := mailer.RenderBookingConfirmation(mailer.BookingConfirmation{
		ClientName:      in.ClientName,
		AppointmentDate: in.AppointmentDate,
		AppointmentSlot: in.AppointmentSlot,
		ServiceType:     in.ServiceType,
		Address:         in.Address,
		TrackingID:      in.TrackingID,
		Locale:          in.Locale,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.sender.Send(ctx, mailer.Message{
		From:    uc.from,
		To:      []string{to},
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Text:    rendered.Text,
	}); err != nil {
		uc.metrics.Email("failed")
		return nil, httperr.Wrap(httperr.KindBackend, "email_send_failed", "L'e-mail n'a pas pu être envoyé.", err)
	}

	uc.metrics.Email("sent")
	return &Result{To: to}, nil
}

func missingFields(in BookingConfirmationInput) []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"clientName", in.ClientName},
		{"appointmentDate", in.AppointmentDate},
		{"appointmentSlot", in.AppointmentSlot},
		{"serviceType", in.ServiceType},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
