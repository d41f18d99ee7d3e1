package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aircooling/backoffice/internal/audit"
	"github.com/aircooling/backoffice/internal/backend"
	domain "github.com/aircooling/backoffice/internal/domain/crm"
	"github.com/aircooling/backoffice/internal/models"
)

type CRMGormRepository struct {
	q backend.Querier
}

func NewCRMGormRepository(q backend.Querier) *CRMGormRepository {
	return &CRMGormRepository{q: q}
}

func (r *CRMGormRepository) List(ctx context.Context) ([]models.PipelineRecord, error) {
	var out []models.PipelineRecord
	err := r.q.Transaction(ctx, func(tx *gorm.DB) error {
		return tx.Joins("Client").Order("crm_pipeline.updated_at DESC").Find(&out).Error
	})
	return out, err
}

func (r *CRMGormRepository) MoveStage(
	ctx context.Context,
	id string,
	to domain.Stage,
	actorID string,
) (*models.PipelineRecord, error) {

	var rec models.PipelineRecord
	err := r.q.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&rec).Error; err != nil {
			return err
		}

		from := rec.Stage
		if err := tx.Model(&rec).Update("stage", string(to)).Error; err != nil {
			return err
		}
		rec.Stage = string(to)

		return audit.Record(tx, audit.Event{
			UserID:   actorID,
			Action:   "crm_stage_changed",
			Entity:   "crm_pipeline",
			EntityID: rec.ID,
			Metadata: map[string]string{"from": from, "to": string(to)},
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

var _ domain.Repository = (*CRMGormRepository)(nil)
