package appointment

import (
	"time"

	"github.com/aircooling/backoffice/internal/models"
)

// Cancel closes an open appointment without an intervention.
func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// Complete closes an open appointment with the technician's voucher. The
// voucher's technician must be the assigned one unless anyTechnician is set;
// an unassigned appointment is then taken over by the voucher's author.
func Complete(ap *models.Appointment, v *models.InterventionVoucher, anyTechnician bool, now time.Time) error {
	if !anyTechnician && (ap.TechnicianID == nil || *ap.TechnicianID != v.TechnicianID) {
		return ErrNotAssigned
	}
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	if ap.TechnicianID == nil && v.TechnicianID != "" {
		tech := v.TechnicianID
		ap.TechnicianID = &tech
	}
	v.AppointmentID = ap.ID

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}
