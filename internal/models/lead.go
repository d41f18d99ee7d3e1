package models

import "time"

type QuoteRequest struct {
	ID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	ClientID    string `gorm:"type:uuid" json:"clientId"`
	ServiceType string `gorm:"size:80" json:"serviceType"`
	Address     string `gorm:"size:255" json:"address"`
	Message     string `gorm:"type:text" json:"message"`
	Locale      string `gorm:"size:2" json:"locale"`

	CreatedAt time.Time `json:"createdAt"`
}

type PlanSketch struct {
	ID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	ClientID   string `gorm:"type:uuid" json:"clientId"`
	StorageKey string `gorm:"size:255;not null" json:"storageKey"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Notes      string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
}

// InterventionVoucher is the technician's signed record of work done.
type InterventionVoucher struct {
	ID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	AppointmentID string `gorm:"type:uuid;not null" json:"appointmentId"`
	TechnicianID  string `gorm:"type:uuid;not null" json:"technicianId"`

	WorkPerformed   string `gorm:"type:text;not null" json:"workPerformed"`
	PartsUsed       string `gorm:"type:text" json:"partsUsed"`
	DurationMinutes int    `json:"durationMinutes"`
	SignedBy        string `gorm:"size:120" json:"signedBy"`

	CreatedAt time.Time `json:"createdAt"`
}
