package appointment

import (
	"context"
	"time"

	domain "github.com/aircooling/backoffice/internal/domain/appointment"
	"github.com/aircooling/backoffice/internal/dto"
	"github.com/aircooling/backoffice/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute lists one local day, earliest first. A nil technicianID lists
// every technician's appointments.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	technicianID *string,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	start, end := timezone.DayBounds(date)

	appointments, err := uc.repo.ListForPeriod(
		ctx,
		technicianID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentList(appointments), nil
}
