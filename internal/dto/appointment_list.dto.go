package dto

import (
	"time"

	"github.com/aircooling/backoffice/internal/models"
)

type AppointmentListDTO struct {
	ID           string    `json:"id"`
	ScheduledAt  time.Time `json:"scheduledAt"`
	Slot         string    `json:"slot"`
	Status       string    `json:"status"`
	ServiceType  string    `json:"serviceType"`
	Address      string    `json:"address"`
	TrackingID   string    `json:"trackingId"`
	Locale       string    `json:"locale"`
	TechnicianID *string   `json:"technicianId"`
	ClientName   string    `json:"clientName"`
	ClientEmail  string    `json:"clientEmail"`
	ClientPhone  string    `json:"clientPhone"`
}

func NewAppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		item := AppointmentListDTO{
			ID:           ap.ID,
			ScheduledAt:  ap.ScheduledAt,
			Slot:         ap.Slot,
			Status:       ap.Status,
			ServiceType:  ap.ServiceType,
			Address:      ap.Address,
			TrackingID:   ap.TrackingID,
			Locale:       ap.Locale,
			TechnicianID: ap.TechnicianID,
		}
		if ap.Client != nil {
			item.ClientName = ap.Client.FullName
			item.ClientEmail = ap.Client.Email
			item.ClientPhone = ap.Client.Phone
		}
		out = append(out, item)
	}
	return out
}
