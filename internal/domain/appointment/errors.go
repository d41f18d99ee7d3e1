package appointment

import "github.com/aircooling/backoffice/internal/httperr"

// Rule violations surface to clients as 4xx with these codes.
var (
	ErrInvalidState = httperr.New(httperr.KindValidation, "invalid_state", "Ce rendez-vous est déjà clôturé ou annulé.")
	ErrInvalidSlot  = httperr.New(httperr.KindValidation, "invalid_slot", "Créneau inconnu.")
	ErrInvalidDate  = httperr.New(httperr.KindValidation, "invalid_date", "Date invalide. Format attendu : YYYY-MM-DD.")
	ErrDateInPast   = httperr.New(httperr.KindValidation, "date_in_past", "Ce créneau est déjà passé.")
	ErrNotAssigned  = httperr.New(httperr.KindForbidden, "not_assigned", "Intervention non assignée.")
)
