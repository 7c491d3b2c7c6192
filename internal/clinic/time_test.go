package clinic

import (
	"testing"
	"time"
)

func TestParseStamp(t *testing.T) {
	cases := map[string]time.Time{
		"2025-01-15T10:00:00":  time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local),
		"2024-12-20T09:00:00Z": time.Date(2024, 12, 20, 9, 0, 0, 0, time.UTC).Local(),
		"1990-05-10":           time.Date(1990, 5, 10, 0, 0, 0, 0, time.Local),
	}
	for input, expected := range cases {
		got, err := ParseStamp(input)
		if err != nil {
			t.Fatalf("ParseStamp(%q): %v", input, err)
		}
		if !got.Equal(expected) {
			t.Fatalf("ParseStamp(%q)=%v, want %v", input, got, expected)
		}
	}

	if _, err := ParseStamp("not-a-date"); err != ErrBadStamp {
		t.Fatalf("expected ErrBadStamp, got %v", err)
	}
}

func TestSameDayIgnoresTime(t *testing.T) {
	a := time.Date(2025, 1, 15, 0, 0, 1, 0, time.Local)
	b := time.Date(2025, 1, 15, 23, 59, 59, 0, time.Local)
	if !SameDay(a, b) {
		t.Fatalf("same calendar day reported unequal")
	}
	c := time.Date(2025, 1, 16, 0, 0, 0, 0, time.Local)
	if SameDay(b, c) {
		t.Fatalf("adjacent days reported equal")
	}
}
