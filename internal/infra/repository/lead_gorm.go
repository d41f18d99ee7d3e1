package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/aircooling/backoffice/internal/backend"
	domain "github.com/aircooling/backoffice/internal/domain/lead"
	"github.com/aircooling/backoffice/internal/models"
)

type LeadGormRepository struct {
	q backend.Querier
}

func NewLeadGormRepository(q backend.Querier) *LeadGormRepository {
	return &LeadGormRepository{q: q}
}

func (r *LeadGormRepository) CreateQuote(
	ctx context.Context,
	client *models.Client,
	q *models.QuoteRequest,
	rec *models.PipelineRecord,
) error {

	return r.q.Transaction(ctx, func(tx *gorm.DB) error {
		if err := getOrCreateClient(tx, client); err != nil {
			return err
		}

		q.ClientID = client.ID
		if err := tx.Create(q).Error; err != nil {
			return err
		}

		rec.ClientID = client.ID
		return tx.Omit("Client").Create(rec).Error
	})
}

func (r *LeadGormRepository) CreatePlan(
	ctx context.Context,
	client *models.Client,
	p *models.PlanSketch,
) error {

	return r.q.Transaction(ctx, func(tx *gorm.DB) error {
		if err := getOrCreateClient(tx, client); err != nil {
			return err
		}
		p.ClientID = client.ID
		return tx.Create(p).Error
	})
}

var _ domain.Repository = (*LeadGormRepository)(nil)
