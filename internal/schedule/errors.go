package schedule

import (
	"errors"
	"fmt"
)

// Validation failures, rejected before any database access.
var (
	ErrInvalidDate   = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTime   = errors.New("invalid time, expected HH:MM")
	ErrInvalidWindow = errors.New("end time must be after start time")
)

// Resource failures.
var (
	ErrCourtNotFound    = errors.New("court not found")
	ErrCourtUnavailable = errors.New("court is not available")

	// The principal court is reserved for organized training and
	// competition; ad-hoc reservations may only target divisions.
	ErrReservationOnPrincipal = errors.New("reservations cannot target the principal court")
	// Training sessions occupy the full facility and may only target the
	// principal court (or an off-site location with no court at all).
	ErrSessionOffPrincipal = errors.New("training sessions can only target the principal court")
)

// ConflictError names the event that occupies the requested window.
type ConflictError struct {
	BlockingKind Kind
	CourtName    string
	Window       TimeWindow
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict with a %s on %s from %s to %s",
		kindLabel(e.BlockingKind), e.CourtName, e.Window.Start, e.Window.End)
}

// IsValidationError reports whether err was rejected before touching the
// database.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidTime) ||
		errors.Is(err, ErrInvalidWindow)
}

// IsResourceError reports whether err names an unusable or ineligible court.
func IsResourceError(err error) bool {
	return errors.Is(err, ErrCourtNotFound) ||
		errors.Is(err, ErrCourtUnavailable) ||
		errors.Is(err, ErrReservationOnPrincipal) ||
		errors.Is(err, ErrSessionOffPrincipal)
}
