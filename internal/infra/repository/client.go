package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/aircooling/backoffice/internal/models"
)

// getOrCreateClient fills c.ID from an existing client with the same email
// (or phone, without email), creating the row otherwise.
func getOrCreateClient(tx *gorm.DB, c *models.Client) error {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))

	var existing models.Client
	var err error
	switch {
	case c.Email != "":
		err = tx.Where("lower(email) = ?", c.Email).First(&existing).Error
	case c.Phone != "":
		err = tx.Where("phone = ?", c.Phone).First(&existing).Error
	default:
		return tx.Create(c).Error
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(c).Error
	}
	if err != nil {
		return err
	}

	*c = existing
	return nil
}
