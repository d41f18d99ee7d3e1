package appointment

import (
	"context"
	"time"

	"github.com/aircooling/backoffice/internal/models"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ListFilter narrows the admin listing. A zero Status means any status.
type ListFilter struct {
	Status Status
	Limit  int
}

type Repository interface {
	// -------- Listing --------
	List(ctx context.Context, f ListFilter) ([]models.Appointment, error)

	ListForPeriod(
		ctx context.Context,
		technicianID *string,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Booking --------

	// Book resolves the client (by email, else phone) and inserts the
	// appointment for it in one transaction.
	Book(ctx context.Context, client *models.Client, ap *models.Appointment) error

	// -------- State change --------
	Cancel(
		ctx context.Context,
		id string,
		actorID string,
		apply func(ap *models.Appointment) error,
	) (*models.Appointment, error)

	CompleteWithVoucher(
		ctx context.Context,
		v *models.InterventionVoucher,
		apply func(ap *models.Appointment) error,
	) (*models.Appointment, error)
}
