package appointment

import (
	"context"
	"strings"
	"time"

	domain "github.com/aircooling/backoffice/internal/domain/appointment"
	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/models"
	"github.com/aircooling/backoffice/internal/timezone"
)

type VoucherInput struct {
	AppointmentID   string
	TechnicianID    string
	WorkPerformed   string
	PartsUsed       string
	DurationMinutes int
	SignedBy        string

	// AnyAppointment lets admins close appointments assigned to someone else.
	AnyAppointment bool
}

type CompleteAppointment struct {
	repo domain.Repository
	now  func() time.Time
}

func NewCompleteAppointment(
	repo domain.Repository,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo: repo,
		now:  timezone.Now,
	}
}

// Execute stores the intervention voucher and marks the appointment
// completed in the same transaction.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	in VoucherInput,
) (*models.Appointment, *models.InterventionVoucher, error) {

	if strings.TrimSpace(in.AppointmentID) == "" || strings.TrimSpace(in.WorkPerformed) == "" {
		return nil, nil, httperr.New(httperr.KindValidation, "missing_fields", "Champs obligatoires manquants.")
	}
	if in.DurationMinutes < 0 {
		return nil, nil, httperr.New(httperr.KindValidation, "invalid_duration", "Durée invalide.")
	}

	v := &models.InterventionVoucher{
		AppointmentID:   in.AppointmentID,
		TechnicianID:    in.TechnicianID,
		WorkPerformed:   strings.TrimSpace(in.WorkPerformed),
		PartsUsed:       strings.TrimSpace(in.PartsUsed),
		DurationMinutes: in.DurationMinutes,
		SignedBy:        strings.TrimSpace(in.SignedBy),
	}

	now := uc.now()
	ap, err := uc.repo.CompleteWithVoucher(ctx, v, func(ap *models.Appointment) error {
		return domain.Complete(ap, v, in.AnyAppointment, now)
	})
	if err != nil {
		return nil, nil, err
	}
	return ap, v, nil
}
