package crm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/aircooling/backoffice/internal/domain/crm"
	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/models"
)

type fakeRepo struct {
	records []models.PipelineRecord
	moved   []string
}

func (f *fakeRepo) List(context.Context) ([]models.PipelineRecord, error) {
	return f.records, nil
}

func (f *fakeRepo) MoveStage(_ context.Context, id string, to domain.Stage, actor string) (*models.PipelineRecord, error) {
	f.moved = append(f.moved, id+":"+string(to)+":"+actor)
	return &models.PipelineRecord{ID: id, Stage: string(to)}, nil
}

func TestGetBoard(t *testing.T) {
	repo := &fakeRepo{records: []models.PipelineRecord{{ID: "1", Stage: "quoted"}}}
	board, err := NewGetBoard(repo).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, board, 6)
	require.Equal(t, domain.StageQuoted, board[2].Stage)
	require.Len(t, board[2].Records, 1)
}

func TestMoveRecord(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewMoveRecord(repo)

	rec, err := uc.Execute(context.Background(), "r1", "scheduled", "u1")
	require.NoError(t, err)
	require.Equal(t, "scheduled", rec.Stage)
	require.Equal(t, []string{"r1:scheduled:u1"}, repo.moved)

	_, err = uc.Execute(context.Background(), "r1", "archived", "u1")
	he := httperr.From(err)
	require.Equal(t, httperr.KindValidation, he.Kind)
	require.Equal(t, "invalid_stage", he.Code)
	require.Len(t, repo.moved, 1)
}
