package crm

import (
	"context"

	domain "github.com/aircooling/backoffice/internal/domain/crm"
	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/models"
)

type GetBoard struct {
	repo domain.Repository
}

func NewGetBoard(repo domain.Repository) *GetBoard {
	return &GetBoard{repo: repo}
}

func (uc *GetBoard) Execute(ctx context.Context) ([]domain.Column, error) {
	records, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.BuildBoard(records), nil
}

type MoveRecord struct {
	repo domain.Repository
}

func NewMoveRecord(repo domain.Repository) *MoveRecord {
	return &MoveRecord{repo: repo}
}

func (uc *MoveRecord) Execute(
	ctx context.Context,
	id string,
	stage string,
	actorID string,
) (*models.PipelineRecord, error) {

	to, ok := domain.ParseStage(stage)
	if !ok {
		return nil, httperr.New(httperr.KindValidation, "invalid_stage", "Étape inconnue.")
	}
	return uc.repo.MoveStage(ctx, id, to, actorID)
}
