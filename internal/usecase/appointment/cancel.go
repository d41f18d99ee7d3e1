package appointment

import (
	"context"
	"time"

	domain "github.com/aircooling/backoffice/internal/domain/appointment"
	"github.com/aircooling/backoffice/internal/models"
	"github.com/aircooling/backoffice/internal/timezone"
)

type CancelAppointment struct {
	repo domain.Repository
	now  func() time.Time
}

func NewCancelAppointment(repo domain.Repository) *CancelAppointment {
	return &CancelAppointment{
		repo: repo,
		now:  timezone.Now,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID string,
	actorID string,
) (*models.Appointment, error) {

	now := uc.now()
	return uc.repo.Cancel(ctx, appointmentID, actorID, func(ap *models.Appointment) error {
		return domain.Cancel(ap, now)
	})
}
