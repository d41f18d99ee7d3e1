package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aircooling/backoffice/internal/audit"
	"github.com/aircooling/backoffice/internal/backend"
	domain "github.com/aircooling/backoffice/internal/domain/appointment"
	"github.com/aircooling/backoffice/internal/models"
)

type AppointmentGormRepository struct {
	q backend.Querier
}

func NewAppointmentGormRepository(q backend.Querier) *AppointmentGormRepository {
	return &AppointmentGormRepository{q: q}
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	var out []models.Appointment
	err := r.q.Transaction(ctx, func(tx *gorm.DB) error {
		// Joins keeps the listing to one round trip; columns are qualified
		// because clients shares some of their names.
		query := tx.Joins("Client").Order("appointments.scheduled_at DESC")
		if f.Status != "" {
			query = query.Where("appointments.status = ?", string(f.Status))
		}
		if f.Limit > 0 {
			query = query.Limit(f.Limit)
		}
		return query.Find(&out).Error
	})
	return out, err
}

func (r *AppointmentGormRepository) ListForPeriod(
	ctx context.Context,
	technicianID *string,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var out []models.Appointment
	err := r.q.Transaction(ctx, func(tx *gorm.DB) error {
		query := tx.Joins("Client").
			Where("appointments.scheduled_at >= ? AND appointments.scheduled_at < ?", start, end).
			Order("appointments.scheduled_at ASC")
		if technicianID != nil {
			query = query.Where("appointments.technician_id = ?", *technicianID)
		}
		return query.Find(&out).Error
	})
	return out, err
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *AppointmentGormRepository) Book(
	ctx context.Context,
	client *models.Client,
	ap *models.Appointment,
) error {

	return r.q.Transaction(ctx, func(tx *gorm.DB) error {
		if err := getOrCreateClient(tx, client); err != nil {
			return err
		}
		ap.ClientID = client.ID
		if err := tx.Omit(clause.Associations).Create(ap).Error; err != nil {
			return err
		}
		ap.Client = client
		return nil
	})
}

// --------------------------------------------------
// State change
// --------------------------------------------------

func (r *AppointmentGormRepository) Cancel(
	ctx context.Context,
	id string,
	actorID string,
	apply func(ap *models.Appointment) error,
) (*models.Appointment, error) {

	return r.mutate(ctx, id, apply, func(tx *gorm.DB, ap *models.Appointment) error {
		return audit.Record(tx, audit.Event{
			UserID:   actorID,
			Action:   "appointment_cancelled",
			Entity:   "appointment",
			EntityID: ap.ID,
		})
	})
}

func (r *AppointmentGormRepository) CompleteWithVoucher(
	ctx context.Context,
	v *models.InterventionVoucher,
	apply func(ap *models.Appointment) error,
) (*models.Appointment, error) {

	return r.mutate(ctx, v.AppointmentID, apply, func(tx *gorm.DB, ap *models.Appointment) error {
		if err := tx.Create(v).Error; err != nil {
			return err
		}
		return audit.Record(tx, audit.Event{
			UserID:   v.TechnicianID,
			Action:   "appointment_completed",
			Entity:   "appointment",
			EntityID: ap.ID,
			Metadata: map[string]string{"voucherId": v.ID},
		})
	})
}

// mutate locks the row, applies the domain action, saves it and runs after,
// all in one transaction.
func (r *AppointmentGormRepository) mutate(
	ctx context.Context,
	id string,
	apply func(ap *models.Appointment) error,
	after func(tx *gorm.DB, ap *models.Appointment) error,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.q.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&ap).Error; err != nil {
			return err
		}

		if err := apply(&ap); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Save(&ap).Error; err != nil {
			return err
		}
		return after(tx, &ap)
	})
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)
