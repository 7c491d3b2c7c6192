// Package calendar builds the month view grid: Sunday-aligned rows of
// seven day cells covering every calendar week that intersects the target
// month, with incidents bucketed onto their calendar day.
//
// Day equality compares only the date portion under the clinic timestamp
// policy (naive stamps are local wall-clock time).
package calendar

import (
	"time"

	"dentalcenter.org/internal/clinic"
	"dentalcenter.org/internal/views"
)

// DisplayCap is how many appointments a cell shows before collapsing the
// rest into a "+N more" count. It is a display policy only; the full list
// stays on the cell.
const DisplayCap = 3

// Cell is one day of the grid.
type Cell struct {
	Date         time.Time
	InMonth      bool
	Today        bool
	Selected     bool
	Appointments []clinic.Incident // full list, ascending by time of day
	Display      []clinic.Incident // first DisplayCap entries
	More         int               // count beyond the display cap
}

// Week is one Sunday-to-Saturday row.
type Week [7]Cell

// Summary aggregates the target month (the calendar month, not a rolling
// window).
type Summary struct {
	Total     int
	Completed int
	Scheduled int
	Revenue   int64
}

// Grid is the built month view.
type Grid struct {
	Year    int
	Month   time.Month
	Weeks   []Week
	Summary Summary
}

// BuildGrid builds the grid for the month containing reference. selected
// may be nil. "Today" is the process's current date at build time.
func BuildGrid(reference time.Time, incidents []clinic.Incident, selected *time.Time) Grid {
	return buildGridAt(reference, incidents, selected, time.Now())
}

func buildGridAt(reference time.Time, incidents []clinic.Incident, selected *time.Time, now time.Time) Grid {
	loc := reference.Location()
	first := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	// Grid bounds: the Sunday on/before the 1st through the Saturday
	// on/after the last day of the month.
	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	byDay, inMonth := bucket(incidents, first)

	g := Grid{
		Year:    first.Year(),
		Month:   first.Month(),
		Summary: summarize(inMonth),
	}

	var week Week
	i := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		appts := byDay[dayKey(day)]
		cell := Cell{
			Date:         day,
			InMonth:      clinic.SameMonth(day, first),
			Today:        clinic.SameDay(day, now),
			Appointments: appts,
			Display:      appts,
		}
		if selected != nil && clinic.SameDay(day, *selected) {
			cell.Selected = true
		}
		if len(appts) > DisplayCap {
			cell.Display = appts[:DisplayCap]
			cell.More = len(appts) - DisplayCap
		}
		week[i] = cell
		i++
		if i == 7 {
			g.Weeks = append(g.Weeks, week)
			week = Week{}
			i = 0
		}
	}
	return g
}

// bucket groups incidents by calendar day (ascending by time within a day)
// and collects the ones falling in the target month for the summary.
func bucket(incidents []clinic.Incident, monthStart time.Time) (map[string][]clinic.Incident, []clinic.Incident) {
	byDay := make(map[string][]clinic.Incident)
	var inMonth []clinic.Incident
	for _, inc := range incidents {
		at, err := clinic.ParseStamp(inc.AppointmentDate)
		if err != nil {
			continue
		}
		key := dayKey(at)
		byDay[key] = insertByTime(byDay[key], inc, at)
		if clinic.SameMonth(at, monthStart) {
			inMonth = append(inMonth, inc)
		}
	}
	return byDay, inMonth
}

// insertByTime keeps a day's bucket ascending by appointment time while
// preserving input order among equal times.
func insertByTime(bucket []clinic.Incident, inc clinic.Incident, at time.Time) []clinic.Incident {
	pos := len(bucket)
	for i, existing := range bucket {
		t, err := clinic.ParseStamp(existing.AppointmentDate)
		if err != nil {
			continue
		}
		if at.Before(t) {
			pos = i
			break
		}
	}
	bucket = append(bucket, clinic.Incident{})
	copy(bucket[pos+1:], bucket[pos:])
	bucket[pos] = inc
	return bucket
}

func summarize(inMonth []clinic.Incident) Summary {
	s := Summary{Total: len(inMonth), Revenue: views.Revenue(inMonth)}
	for _, inc := range inMonth {
		switch inc.Status {
		case clinic.StatusCompleted:
			s.Completed++
		case clinic.StatusScheduled:
			s.Scheduled++
		}
	}
	return s
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
