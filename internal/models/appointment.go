package models

import "time"

type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	ClientID string  `gorm:"type:uuid" json:"clientId"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`

	TechnicianID *string `gorm:"type:uuid" json:"technicianId"`

	ScheduledAt time.Time `gorm:"index" json:"scheduledAt"`
	Slot        string    `gorm:"size:20" json:"slot"`
	ServiceType string    `gorm:"size:80" json:"serviceType"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Address    string `gorm:"size:255" json:"address"`
	TrackingID string `gorm:"size:26;uniqueIndex" json:"trackingId"`
	Locale     string `gorm:"size:2;default:'fr'" json:"locale"`
	Notes      string `gorm:"type:text" json:"notes"`

	CompletedAt *time.Time `json:"completedAt"`
	CancelledAt *time.Time `json:"cancelledAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
