package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/aircooling/backoffice/internal/backend"
	"github.com/aircooling/backoffice/internal/models"
)

type Event struct {
	UserID   string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Record writes the event inside the caller's transaction, so the audit row
// commits or rolls back with the change it describes.
func Record(tx *gorm.DB, ev Event) error {
	return tx.Create(toModel(ev)).Error
}

// Logger writes standalone audit rows through a backend handle.
type Logger struct {
	q backend.Querier
}

func New(q backend.Querier) *Logger {
	return &Logger{q: q}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	return l.q.Transaction(ctx, func(tx *gorm.DB) error {
		return Record(tx, ev)
	})
}

func toModel(ev Event) *models.AuditLog {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return &models.AuditLog{
		UserID:   optional(ev.UserID),
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: optional(ev.EntityID),
		Metadata: metaJSON,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
