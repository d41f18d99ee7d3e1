package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var allStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

func ParseStatus(s string) (Status, bool) {
	for _, st := range allStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// ===============================
// Validations
// ===============================

func isOpen(current Status) bool {
	return current == StatusPending || current == StatusConfirmed || current == StatusInProgress
}

// CanCancel and CanComplete share one rule: only open appointments move.
func CanCancel(current Status) error {
	if !isOpen(current) {
		return ErrInvalidState
	}
	return nil
}

func CanComplete(current Status) error {
	return CanCancel(current)
}

func InitialStatus() Status {
	return StatusPending
}
