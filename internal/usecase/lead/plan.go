package lead

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	domain "github.com/aircooling/backoffice/internal/domain/lead"
	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/infra/events"
	"github.com/aircooling/backoffice/internal/infra/storage"
	"github.com/aircooling/backoffice/internal/models"
	"github.com/aircooling/backoffice/internal/monitoring"
	"github.com/aircooling/backoffice/internal/timezone"
)

type PlanInput struct {
	Contact
	Notes string `form:"notes"`

	Image     io.Reader `form:"-"`
	RequestID string    `form:"-"`
}

type UploadPlan struct {
	repo     domain.Repository
	uploader storage.Uploader
	events   events.Publisher
	metrics  *monitoring.Metrics
	log      *zap.Logger
	now      func() time.Time
}

func NewUploadPlan(
	repo domain.Repository,
	uploader storage.Uploader,
	publisher events.Publisher,
	metrics *monitoring.Metrics,
	log *zap.Logger,
) *UploadPlan {
	return &UploadPlan{
		repo:     repo,
		uploader: uploader,
		events:   publisher,
		metrics:  metrics,
		log:      log,
		now:      timezone.Now,
	}
}

// Execute converts the sketch to WebP, stores it and records the row. An
// upload failure stores nothing.
func (uc *UploadPlan) Execute(ctx context.Context, in PlanInput) (*models.PlanSketch, error) {
	client, err := in.toClient()
	if err != nil {
		return nil, err
	}
	if in.Image == nil {
		return nil, httperr.New(httperr.KindValidation, "missing_image", "Image manquante.")
	}

	img, err := storage.EncodePlan(in.Image)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			return nil, httperr.Wrap(httperr.KindValidation, "invalid_image", "Format d'image non supporté.", err)
		}
		if errors.Is(err, storage.ErrImageTooLarge) {
			return nil, httperr.Wrap(httperr.KindValidation, "image_too_large", "Image trop volumineuse.", err)
		}
		return nil, err
	}

	key := storage.PlanKey(uc.now())
	if err := uc.uploader.Put(ctx, key, img.Data, img.ContentType); err != nil {
		return nil, httperr.Wrap(httperr.KindBackend, "storage_failed", "Le fichier n'a pas pu être enregistré.", err)
	}

	p := &models.PlanSketch{
		StorageKey: key,
		Width:      img.Width,
		Height:     img.Height,
		Notes:      strings.TrimSpace(in.Notes),
	}
	if err := uc.repo.CreatePlan(ctx, client, p); err != nil {
		uc.log.Error("plan_row_failed", zap.String("storage_key", key), zap.Error(err))
		return nil, err
	}
	uc.metrics.Lead("plan")

	if err := uc.events.Publish(ctx, p.ID, events.Event{
		Type:       events.LeadPlanUploaded,
		OccurredAt: uc.now(),
		RequestID:  in.RequestID,
		Data: map[string]string{
			"planId":     p.ID,
			"storageKey": key,
		},
	}); err != nil {
		uc.log.Warn("lead_event_failed", zap.String("type", events.LeadPlanUploaded), zap.Error(err))
	}

	return p, nil
}
