package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dentalcenter.org/internal/clinic"
)

func cost(v int64) *int64 { return &v }

func TestRevenueCountsOnlyCompletedWithCost(t *testing.T) {
	incidents := []clinic.Incident{
		{ID: "a", Status: clinic.StatusCompleted, Cost: cost(280)},
		{ID: "b", Status: clinic.StatusScheduled},
		{ID: "c", Status: clinic.StatusCompleted, Cost: cost(150)},
	}
	assert.Equal(t, int64(430), Revenue(incidents))

	// Completed without a recorded cost contributes 0.
	incidents = append(incidents, clinic.Incident{ID: "d", Status: clinic.StatusCompleted})
	assert.Equal(t, int64(430), Revenue(incidents))
}

func TestRevenueBetween(t *testing.T) {
	incidents := []clinic.Incident{
		{ID: "a", Status: clinic.StatusCompleted, Cost: cost(100), AppointmentDate: "2025-01-10T09:00:00"},
		{ID: "b", Status: clinic.StatusCompleted, Cost: cost(200), AppointmentDate: "2025-02-10T09:00:00"},
	}
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local)
	assert.Equal(t, int64(100), RevenueBetween(incidents, from, to))
}

func TestTopPatientsStableOrdering(t *testing.T) {
	patients := []clinic.Patient{
		{ID: "a", Name: "First"},
		{ID: "b", Name: "Second"},
		{ID: "c", Name: "Third"},
		{ID: "d", Name: "Fourth"},
	}
	spend := map[string]int64{"a": 100, "b": 300, "c": 300, "d": 50}
	var incidents []clinic.Incident
	for id, amount := range spend {
		incidents = append(incidents, clinic.Incident{
			ID:        "inc-" + id,
			PatientID: id,
			Status:    clinic.StatusCompleted,
			Cost:      cost(amount),
		})
	}

	ranked := TopPatients(patients, incidents, 0)
	require.Len(t, ranked, 4)

	// Equal spenders keep original list order: b before c.
	assert.Equal(t, []string{"b", "c", "a", "d"}, []string{
		ranked[0].ID, ranked[1].ID, ranked[2].ID, ranked[3].ID,
	})

	top2 := TopPatients(patients, incidents, 2)
	require.Len(t, top2, 2)
	assert.Equal(t, "b", top2[0].ID)
}

func TestPatientStats(t *testing.T) {
	incidents := []clinic.Incident{
		{ID: "a", PatientID: "p1", Status: clinic.StatusCompleted, Cost: cost(280)},
		{ID: "b", PatientID: "p1", Status: clinic.StatusScheduled},
		{ID: "c", PatientID: "p1", Status: clinic.StatusInProgress},
		{ID: "d", PatientID: "p2", Status: clinic.StatusCompleted, Cost: cost(999)},
	}
	s := PatientStats(incidents, "p1")
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 2, s.Pending)
	assert.Equal(t, int64(280), s.TotalSpent)
}

func TestUpcomingOpenIntervalAndCap(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	incidents := []clinic.Incident{
		{ID: "at-now", AppointmentDate: clinic.FormatStamp(now)},
		{ID: "just-after", AppointmentDate: clinic.FormatStamp(now.Add(time.Minute))},
		{ID: "at-boundary", AppointmentDate: clinic.FormatStamp(now.Add(7 * 24 * time.Hour))},
		{ID: "past", AppointmentDate: clinic.FormatStamp(now.Add(-time.Hour))},
		{ID: "mid", AppointmentDate: clinic.FormatStamp(now.Add(48 * time.Hour))},
	}

	got := Upcoming(incidents, now, 10)
	require.Len(t, got, 2)
	// Strictly after now, strictly before the 7-day boundary, ascending.
	assert.Equal(t, "just-after", got[0].ID)
	assert.Equal(t, "mid", got[1].ID)

	// Cap applies after sorting.
	var many []clinic.Incident
	for i := 0; i < 15; i++ {
		many = append(many, clinic.Incident{
			ID:              string(rune('a' + i)),
			AppointmentDate: clinic.FormatStamp(now.Add(time.Duration(i+1) * time.Hour)),
		})
	}
	assert.Len(t, Upcoming(many, now, 10), 10)
}

func TestUpcomingForPatientHasNoHorizon(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	incidents := []clinic.Incident{
		{ID: "far", PatientID: "p1", AppointmentDate: clinic.FormatStamp(now.AddDate(0, 2, 0))},
		{ID: "near", PatientID: "p1", AppointmentDate: clinic.FormatStamp(now.Add(time.Hour))},
		{ID: "other", PatientID: "p2", AppointmentDate: clinic.FormatStamp(now.Add(time.Hour))},
		{ID: "past", PatientID: "p1", AppointmentDate: clinic.FormatStamp(now.Add(-time.Hour))},
	}
	got := UpcomingForPatient(incidents, "p1", now)
	require.Len(t, got, 2)
	assert.Equal(t, "near", got[0].ID)
	assert.Equal(t, "far", got[1].ID)
}
