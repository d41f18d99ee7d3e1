package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgInsufficientPrivilege = "42501"
	pgUniqueViolation       = "23505"
	pgForeignKeyViolation   = "23503"
	pgExclusionViolation    = "23P01"
	pgInvalidText           = "22P02"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func classifyBackend(err error) *Error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Wrap(KindNotFound, "not_found", "Élément introuvable.", err)
	}

	switch pgCode(err) {
	case "":
		return nil
	case pgInsufficientPrivilege:
		return Wrap(KindForbidden, "forbidden", "Accès refusé.", err)
	case pgUniqueViolation, pgExclusionViolation:
		return Wrap(KindConflict, "conflict", "Conflit avec une donnée existante.", err)
	case pgInvalidText:
		return Wrap(KindValidation, "invalid_id", "Identifiant invalide.", err)
	case pgForeignKeyViolation:
		return Wrap(KindValidation, "invalid_reference", "Référence invalide.", err)
	default:
		return Wrap(KindBackend, "backend_error", "Erreur du service de données.", err)
	}
}

// Backend wraps a failed backend call that does not carry a Postgres code.
func Backend(code string, err error) *Error {
	if he := classifyBackend(err); he != nil {
		return he
	}
	return Wrap(KindBackend, code, "Erreur du service de données.", err)
}
