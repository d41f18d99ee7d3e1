package appointment

import (
	"strings"
	"time"

	"github.com/aircooling/backoffice/internal/timezone"
)

// Slots offered on the public booking form.
var Slots = []string{
	"08:00-10:00",
	"10:00-12:00",
	"13:00-15:00",
	"15:00-17:00",
}

func IsSlot(s string) bool {
	for _, slot := range Slots {
		if slot == s {
			return true
		}
	}
	return false
}

// SlotStart resolves the local start time of a slot on a YYYY-MM-DD date.
func SlotStart(date, slot string) (time.Time, error) {
	if !IsSlot(slot) {
		return time.Time{}, ErrInvalidSlot
	}
	start, _, _ := strings.Cut(slot, "-")
	t, err := timezone.ParseDateTime(date, start)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
