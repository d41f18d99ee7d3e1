package lead

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aircooling/backoffice/internal/domain/crm"
	domain "github.com/aircooling/backoffice/internal/domain/lead"
	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/infra/events"
	"github.com/aircooling/backoffice/internal/models"
	"github.com/aircooling/backoffice/internal/monitoring"
	"github.com/aircooling/backoffice/internal/timezone"
)

type QuoteInput struct {
	Contact
	ServiceType string `json:"serviceType"`
	Message     string `json:"message"`

	RequestID string `json:"-"`
}

type RequestQuote struct {
	repo    domain.Repository
	events  events.Publisher
	metrics *monitoring.Metrics
	log     *zap.Logger
	now     func() time.Time
}

func NewRequestQuote(
	repo domain.Repository,
	publisher events.Publisher,
	metrics *monitoring.Metrics,
	log *zap.Logger,
) *RequestQuote {
	return &RequestQuote{
		repo:    repo,
		events:  publisher,
		metrics: metrics,
		log:     log,
		now:     timezone.Now,
	}
}

// Execute stores the request and opens a CRM record in the "new" column.
func (uc *RequestQuote) Execute(ctx context.Context, in QuoteInput) (*models.QuoteRequest, error) {
	client, err := in.toClient()
	if err != nil {
		return nil, err
	}

	service := strings.TrimSpace(in.ServiceType)
	if service == "" {
		return nil, httperr.New(httperr.KindValidation, "missing_fields", "Champs obligatoires manquants.")
	}

	q := &models.QuoteRequest{
		ServiceType: service,
		Address:     client.Address,
		Message:     strings.TrimSpace(in.Message),
		Locale:      client.Locale,
	}
	rec := &models.PipelineRecord{
		Stage: string(crm.StageNew),
		Title: fmt.Sprintf("%s (%s)", service, client.FullName),
		Notes: q.Message,
	}

	if err := uc.repo.CreateQuote(ctx, client, q, rec); err != nil {
		return nil, err
	}
	uc.metrics.Lead("quote")

	if err := uc.events.Publish(ctx, q.ID, events.Event{
		Type:       events.LeadQuoteRequested,
		OccurredAt: uc.now(),
		RequestID:  in.RequestID,
		Data: map[string]string{
			"quoteRequestId": q.ID,
			"pipelineId":     rec.ID,
			"serviceType":    q.ServiceType,
			"locale":         q.Locale,
		},
	}); err != nil {
		uc.log.Warn("lead_event_failed", zap.String("type", events.LeadQuoteRequested), zap.Error(err))
	}

	return q, nil
}
