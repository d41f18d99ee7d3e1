package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/aircooling/backoffice/internal/backend"
	domain "github.com/aircooling/backoffice/internal/domain/payment"
	"github.com/aircooling/backoffice/internal/models"
)

type PaymentGormRepository struct {
	q backend.Querier
}

func NewPaymentGormRepository(q backend.Querier) *PaymentGormRepository {
	return &PaymentGormRepository{q: q}
}

func (r *PaymentGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Payment, error) {

	var out []models.Payment
	err := r.q.Transaction(ctx, func(tx *gorm.DB) error {
		query := tx.Order("created_at DESC")
		if f.From != nil {
			query = query.Where("created_at >= ?", *f.From)
		}
		if f.To != nil {
			query = query.Where("created_at < ?", *f.To)
		}
		if f.Limit > 0 {
			query = query.Limit(f.Limit)
		}
		return query.Find(&out).Error
	})
	return out, err
}

var _ domain.Repository = (*PaymentGormRepository)(nil)
