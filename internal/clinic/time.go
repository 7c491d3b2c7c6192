package clinic

import (
	"errors"
	"time"
)

// Stored timestamps come in three shapes: naive ISO datetimes for
// appointments ("2025-01-15T10:00:00"), RFC3339 for created-at stamps, and
// bare dates. The policy here is that naive stamps are local wall-clock
// time; every date comparison in the module goes through ParseStamp so the
// interpretation cannot diverge between callers.
const (
	stampLayout = "2006-01-02T15:04:05"
	dateLayout  = "2006-01-02"
)

var ErrBadStamp = errors.New("clinic: unrecognized timestamp")

// ParseStamp parses a stored timestamp under the module's timezone policy.
func ParseStamp(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(stampLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Local(), nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, ErrBadStamp
}

// FormatStamp renders t in the naive appointment layout.
func FormatStamp(t time.Time) string {
	return t.Format(stampLayout)
}

// SameDay compares only the date portion of a and b.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
