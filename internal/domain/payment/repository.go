package payment

import (
	"context"
	"time"

	"github.com/aircooling/backoffice/internal/models"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ListFilter bounds created_at to [From, To). Nil bounds are open.
type ListFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

type Repository interface {
	List(ctx context.Context, f ListFilter) ([]models.Payment, error)
}
