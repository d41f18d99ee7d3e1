package models

import "time"

// Client is a customer of the company, created from any lead-capture form.
type Client struct {
	ID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	FullName string `gorm:"size:120;not null" json:"fullName"`
	Email    string `gorm:"size:160;index" json:"email"`
	Phone    string `gorm:"size:40" json:"phone"`
	Address  string `gorm:"size:255" json:"address"`
	Locale   string `gorm:"size:2;default:'fr'" json:"locale"`

	CreatedAt time.Time `json:"createdAt"`
}
