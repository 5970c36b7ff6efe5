package schedule

import (
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// TimeWindow is the half-open interval [Start, End) on a calendar day. All
// three event kinds use it unchanged, with clock values kept as zero-padded
// "HH:MM" strings so they compare lexicographically.
type TimeWindow struct {
	Date  string `json:"date"`
	Start string `json:"start_time"`
	End   string `json:"end_time"`
}

func NewTimeWindow(date, start, end string) (TimeWindow, error) {
	w := TimeWindow{Date: date, Start: start, End: end}
	if err := w.Validate(); err != nil {
		return TimeWindow{}, err
	}
	return w, nil
}

func (w TimeWindow) Validate() error {
	if _, err := time.Parse(dateLayout, w.Date); err != nil {
		return ErrInvalidDate
	}
	if _, err := time.Parse(clockLayout, w.Start); err != nil {
		return ErrInvalidTime
	}
	if _, err := time.Parse(clockLayout, w.End); err != nil {
		return ErrInvalidTime
	}
	if w.End <= w.Start {
		return ErrInvalidWindow
	}
	return nil
}

// Overlaps reports whether the two half-open windows intersect. A window
// ending exactly when the other begins does not conflict.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	if w.Date != other.Date {
		return false
	}
	return w.Start < other.End && other.Start < w.End
}

// StartsAt resolves the window's opening instant in the local timezone,
// used for the cancellation cutoff.
func (w TimeWindow) StartsAt() (time.Time, error) {
	return time.ParseInLocation(dateLayout+" "+clockLayout, w.Date+" "+w.Start, time.Local)
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%s from %s to %s", w.Date, w.Start, w.End)
}

// ValidDate checks a standalone YYYY-MM-DD value, e.g. the grid date.
func ValidDate(date string) bool {
	_, err := time.Parse(dateLayout, date)
	return err == nil
}
