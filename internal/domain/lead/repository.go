package lead

import (
	"context"

	"github.com/aircooling/backoffice/internal/models"
)

const (
	LocaleFR = "fr"
	LocaleNL = "nl"
)

// NormalizeLocale maps anything but "nl" to the default "fr".
func NormalizeLocale(s string) string {
	if s == LocaleNL {
		return LocaleNL
	}
	return LocaleFR
}

type Repository interface {
	// CreateQuote stores the client, the quote request and its opening CRM
	// record in one transaction.
	CreateQuote(
		ctx context.Context,
		client *models.Client,
		q *models.QuoteRequest,
		rec *models.PipelineRecord,
	) error

	CreatePlan(ctx context.Context, client *models.Client, p *models.PlanSketch) error
}
