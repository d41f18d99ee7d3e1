package payment

import (
	"context"

	domain "github.com/aircooling/backoffice/internal/domain/payment"
	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/models"
)

type ListPayments struct {
	repo domain.Repository
}

func NewListPayments(repo domain.Repository) *ListPayments {
	return &ListPayments{repo: repo}
}

func (uc *ListPayments) Execute(ctx context.Context, f domain.ListFilter) ([]models.Payment, error) {
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return nil, httperr.New(httperr.KindValidation, "invalid_range", "La date de début doit précéder la date de fin.")
	}

	if f.Limit <= 0 {
		f.Limit = domain.DefaultLimit
	}
	if f.Limit > domain.MaxLimit {
		f.Limit = domain.MaxLimit
	}
	return uc.repo.List(ctx, f)
}
