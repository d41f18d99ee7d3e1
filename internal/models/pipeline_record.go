package models

import "time"

// PipelineRecord is one card on the CRM board.
type PipelineRecord struct {
	ID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	ClientID string  `gorm:"type:uuid" json:"clientId"`
	Client   *Client `json:"client,omitempty"`

	Stage      string `gorm:"size:20;default:'new'" json:"stage"`
	Title      string `gorm:"size:160" json:"title"`
	ValueCents int64  `json:"valueCents"`
	Notes      string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (PipelineRecord) TableName() string {
	return "crm_pipeline"
}
