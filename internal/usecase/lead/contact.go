package lead

import (
	"strings"

	domain "github.com/aircooling/backoffice/internal/domain/lead"
	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/models"
	"github.com/aircooling/backoffice/internal/validators"
)

// Contact is the visitor block shared by every lead-capture form.
type Contact struct {
	ClientName  string `json:"clientName" form:"clientName"`
	ClientEmail string `json:"clientEmail" form:"clientEmail"`
	ClientPhone string `json:"clientPhone" form:"clientPhone"`
	Address     string `json:"address" form:"address"`
	Locale      string `json:"locale" form:"locale"`
}

func (c Contact) toClient() (*models.Client, error) {
	name := strings.TrimSpace(c.ClientName)
	mail := validators.NormalizeEmail(c.ClientEmail)
	phone := strings.TrimSpace(c.ClientPhone)

	if name == "" {
		return nil, httperr.New(httperr.KindValidation, "missing_fields", "Champs obligatoires manquants.")
	}
	if mail == "" && phone == "" {
		return nil, httperr.New(httperr.KindValidation, "missing_contact", "Un e-mail ou un téléphone est requis.")
	}
	if mail != "" && !validators.IsEmail(mail) {
		return nil, httperr.New(httperr.KindValidation, "invalid_email", "Adresse e-mail invalide.")
	}

	return &models.Client{
		FullName: name,
		Email:    mail,
		Phone:    phone,
		Address:  strings.TrimSpace(c.Address),
		Locale:   domain.NormalizeLocale(c.Locale),
	}, nil
}
