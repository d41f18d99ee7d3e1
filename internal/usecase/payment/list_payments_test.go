package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/aircooling/backoffice/internal/domain/payment"
	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/models"
)

type fakeRepo struct {
	got domain.ListFilter
}

func (f *fakeRepo) List(_ context.Context, fl domain.ListFilter) ([]models.Payment, error) {
	f.got = fl
	return nil, nil
}

func TestListPayments(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewListPayments(repo)

	_, err := uc.Execute(context.Background(), domain.ListFilter{})
	require.NoError(t, err)
	require.Equal(t, 50, repo.got.Limit)

	_, err = uc.Execute(context.Background(), domain.ListFilter{Limit: 500})
	require.NoError(t, err)
	require.Equal(t, 200, repo.got.Limit)

	from := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)
	_, err = uc.Execute(context.Background(), domain.ListFilter{From: &from, To: &to})
	require.Equal(t, "invalid_range", httperr.From(err).Code)
}
