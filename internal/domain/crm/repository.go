package crm

import (
	"context"

	"github.com/aircooling/backoffice/internal/models"
)

type Repository interface {
	// List returns every pipeline record, most recently updated first.
	List(ctx context.Context) ([]models.PipelineRecord, error)

	// MoveStage sets the record's stage and writes the audit row in the same
	// transaction.
	MoveStage(ctx context.Context, id string, to Stage, actorID string) (*models.PipelineRecord, error)
}
