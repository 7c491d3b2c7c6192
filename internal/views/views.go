// Package views holds the derived read models the dashboards show. Nothing
// here is stored; every value is recomputed from the current state.
package views

import (
	"sort"
	"time"

	"dentalcenter.org/internal/clinic"
)

// Stats summarizes one patient's incident history.
type Stats struct {
	Total      int
	Completed  int
	Pending    int
	TotalSpent int64
}

// PatientStats computes the per-patient summary. Pending is everything not
// completed; spend counts completed incidents with a recorded cost.
func PatientStats(incidents []clinic.Incident, patientID string) Stats {
	var s Stats
	for _, inc := range incidents {
		if inc.PatientID != patientID {
			continue
		}
		s.Total++
		if inc.Status == clinic.StatusCompleted {
			s.Completed++
			if inc.HasCost() {
				s.TotalSpent += inc.CostValue()
			}
		} else {
			s.Pending++
		}
	}
	return s
}

// Revenue sums the cost of completed incidents that have one recorded.
func Revenue(incidents []clinic.Incident) int64 {
	var total int64
	for _, inc := range incidents {
		if inc.Status == clinic.StatusCompleted && inc.HasCost() {
			total += inc.CostValue()
		}
	}
	return total
}

// RevenueBetween scopes Revenue to incidents whose appointment date falls
// in [from, to). Unparseable dates are skipped.
func RevenueBetween(incidents []clinic.Incident, from, to time.Time) int64 {
	var total int64
	for _, inc := range incidents {
		if inc.Status != clinic.StatusCompleted || !inc.HasCost() {
			continue
		}
		at, err := clinic.ParseStamp(inc.AppointmentDate)
		if err != nil {
			continue
		}
		if at.Before(from) || !at.Before(to) {
			continue
		}
		total += inc.CostValue()
	}
	return total
}

// RankedPatient is a patient annotated with spending for the top list.
type RankedPatient struct {
	clinic.Patient
	AppointmentCount int
	TotalSpent       int64
}

// TopPatients ranks patients descending by total spend, capped at n. The
// sort is stable: equal spenders keep their original list order.
func TopPatients(patients []clinic.Patient, incidents []clinic.Incident, n int) []RankedPatient {
	ranked := make([]RankedPatient, 0, len(patients))
	for _, p := range patients {
		stats := PatientStats(incidents, p.ID)
		ranked = append(ranked, RankedPatient{
			Patient:          p,
			AppointmentCount: stats.Total,
			TotalSpent:       stats.TotalSpent,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalSpent > ranked[j].TotalSpent
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Upcoming returns incidents with an appointment date strictly inside
// (now, now+7d), ascending by date, capped at limit (the dashboard uses 10).
func Upcoming(incidents []clinic.Incident, now time.Time, limit int) []clinic.Incident {
	horizon := now.Add(7 * 24 * time.Hour)
	var out []clinic.Incident
	for _, inc := range incidents {
		at, err := clinic.ParseStamp(inc.AppointmentDate)
		if err != nil {
			continue
		}
		if at.After(now) && at.Before(horizon) {
			out = append(out, inc)
		}
	}
	sortByAppointment(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ForPatient filters the incident list to one patient, preserving order.
func ForPatient(incidents []clinic.Incident, patientID string) []clinic.Incident {
	var out []clinic.Incident
	for _, inc := range incidents {
		if inc.PatientID == patientID {
			out = append(out, inc)
		}
	}
	return out
}

// UpcomingForPatient returns all of one patient's future incidents,
// ascending. The patient dashboard has no 7-day horizon.
func UpcomingForPatient(incidents []clinic.Incident, patientID string, now time.Time) []clinic.Incident {
	var out []clinic.Incident
	for _, inc := range ForPatient(incidents, patientID) {
		at, err := clinic.ParseStamp(inc.AppointmentDate)
		if err != nil {
			continue
		}
		if at.After(now) {
			out = append(out, inc)
		}
	}
	sortByAppointment(out)
	return out
}

func sortByAppointment(incidents []clinic.Incident) {
	sort.SliceStable(incidents, func(i, j int) bool {
		a, errA := clinic.ParseStamp(incidents[i].AppointmentDate)
		b, errB := clinic.ParseStamp(incidents[j].AppointmentDate)
		if errA != nil || errB != nil {
			return false
		}
		return a.Before(b)
	})
}
