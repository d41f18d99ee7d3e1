package models

import "time"

type Payment struct {
	ID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	AppointmentID *string `gorm:"type:uuid" json:"appointmentId"`
	ClientID      *string `gorm:"type:uuid" json:"clientId"`

	AmountCents int64  `json:"amountCents"`
	Currency    string `gorm:"size:3;default:'EUR'" json:"currency"`
	Method      string `gorm:"size:20" json:"method"`
	Status      string `gorm:"size:20" json:"status"`
	Reference   string `gorm:"size:80" json:"reference"`

	PaidAt    *time.Time `json:"paidAt"`
	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
}
