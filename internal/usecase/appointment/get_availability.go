package appointment

import (
	"time"

	domain "github.com/aircooling/backoffice/internal/domain/appointment"
	"github.com/aircooling/backoffice/internal/timezone"
)

type SlotAvailability struct {
	Slot      string `json:"slot"`
	Available bool   `json:"available"`
}

type GetAvailability struct {
	now func() time.Time
}

func NewGetAvailability(now func() time.Time) *GetAvailability {
	if now == nil {
		now = timezone.Now
	}
	return &GetAvailability{now: now}
}

// Execute lists the booking slots of a date; slots that already started are
// unavailable.
func (uc *GetAvailability) Execute(date string) ([]SlotAvailability, error) {
	if _, err := timezone.ParseDate(date); err != nil {
		return nil, domain.ErrInvalidDate
	}

	now := uc.now()
	out := make([]SlotAvailability, 0, len(domain.Slots))
	for _, slot := range domain.Slots {
		start, err := domain.SlotStart(date, slot)
		if err != nil {
			return nil, err
		}
		out = append(out, SlotAvailability{
			Slot:      slot,
			Available: start.After(now),
		})
	}
	return out, nil
}
