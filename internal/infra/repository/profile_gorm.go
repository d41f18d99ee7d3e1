package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/aircooling/backoffice/internal/backend"
	"github.com/aircooling/backoffice/internal/guard"
	"github.com/aircooling/backoffice/internal/models"
)

// ProfileGormRepository reads profiles with a fresh service handle per
// lookup: the role check happens before the caller is authorized.
type ProfileGormRepository struct {
	factory *backend.Factory
}

func NewProfileGormRepository(factory *backend.Factory) *ProfileGormRepository {
	return &ProfileGormRepository{factory: factory}
}

func (r *ProfileGormRepository) ProfileRole(ctx context.Context, userID string) (string, error) {
	var p models.Profile
	err := r.factory.Service().Transaction(ctx, func(tx *gorm.DB) error {
		return tx.Select("id", "role").Where("id = ?", userID).First(&p).Error
	})
	if err != nil {
		return "", err
	}
	return p.Role, nil
}

var _ guard.ProfileReader = (*ProfileGormRepository)(nil)
