package models

import "time"

// Profile is keyed by the auth user id.
type Profile struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	FullName string `gorm:"size:120" json:"fullName"`
	Role     string `gorm:"size:20" json:"role"`

	CreatedAt time.Time `json:"createdAt"`
}
