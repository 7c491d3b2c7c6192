package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"dentalcenter.org/internal/calendar"
	"dentalcenter.org/internal/clinic"
	"dentalcenter.org/internal/views"
)

func (a *app) dashboard() {
	state := a.store.State()
	cur := state.CurrentUser
	if cur == nil {
		fatalf("log in to see a dashboard")
	}
	if cur.Role == clinic.RoleAdmin {
		a.adminDashboard(state)
		return
	}
	a.patientDashboard(state, cur)
}

func (a *app) adminDashboard(state clinic.AppState) {
	now := time.Now()
	var pending, completed int
	for _, inc := range state.Incidents {
		if inc.Status == clinic.StatusCompleted {
			completed++
		} else {
			pending++
		}
	}

	fmt.Println("== Dental Center Dashboard ==")
	fmt.Printf("Total patients:       %d\n", len(state.Patients))
	fmt.Printf("Pending treatments:   %d\n", pending)
	fmt.Printf("Completed treatments: %d\n", completed)
	fmt.Printf("Revenue:              $%d\n", views.Revenue(state.Incidents))

	fmt.Println("\nUpcoming appointments (next 7 days):")
	upcoming := views.Upcoming(state.Incidents, now, 10)
	if len(upcoming) == 0 {
		fmt.Println("  none")
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, inc := range upcoming {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n",
			inc.AppointmentDate, patientName(state, inc.PatientID), inc.Title, inc.Status)
	}
	_ = w.Flush()

	fmt.Println("\nTop patients by spend:")
	for i, rp := range views.TopPatients(state.Patients, state.Incidents, 5) {
		fmt.Printf("  #%d %s — %d appointments, $%d\n", i+1, rp.Name, rp.AppointmentCount, rp.TotalSpent)
	}
}

func (a *app) patientDashboard(state clinic.AppState, cur *clinic.User) {
	now := time.Now()
	stats := views.PatientStats(state.Incidents, cur.PatientID)
	upcoming := views.UpcomingForPatient(state.Incidents, cur.PatientID, now)

	fmt.Println("== My Dashboard ==")
	fmt.Printf("Total appointments: %d\n", stats.Total)
	fmt.Printf("Upcoming:           %d\n", len(upcoming))
	fmt.Printf("Completed:          %d\n", stats.Completed)
	fmt.Printf("Total spent:        $%d\n", stats.TotalSpent)

	fmt.Println("\nUpcoming appointments:")
	if len(upcoming) == 0 {
		fmt.Println("  none")
	}
	limit := len(upcoming)
	if limit > 5 {
		limit = 5
	}
	for _, inc := range upcoming[:limit] {
		fmt.Printf("  %s  %s (%s)\n", inc.AppointmentDate, inc.Title, inc.Status)
	}
}

func (a *app) calendar(args []string) {
	fs := flag.NewFlagSet("calendar", flag.ExitOnError)
	month := fs.String("month", "", "target month (YYYY-MM), defaults to the current month")
	day := fs.Int("day", 0, "show detail for a day of the month")
	_ = fs.Parse(args)

	reference := time.Now()
	if *month != "" {
		parsed, err := time.ParseInLocation("2006-01", *month, time.Local)
		if err != nil {
			fatalf("bad -month %q: %v", *month, err)
		}
		reference = parsed
	}

	var selected *time.Time
	if *day > 0 {
		d := time.Date(reference.Year(), reference.Month(), *day, 0, 0, 0, 0, time.Local)
		selected = &d
	}

	state := a.store.State()
	grid := calendar.BuildGrid(reference, state.Incidents, selected)
	renderGrid(state, grid, selected)
}

func renderGrid(state clinic.AppState, grid calendar.Grid, selected *time.Time) {
	fmt.Printf("        %s %d\n", grid.Month, grid.Year)
	fmt.Println(" Sun  Mon  Tue  Wed  Thu  Fri  Sat")
	for _, week := range grid.Weeks {
		for _, cell := range week {
			marker := " "
			switch {
			case cell.Today:
				marker = "*"
			case cell.Selected:
				marker = ">"
			case !cell.InMonth:
				marker = "."
			}
			if n := len(cell.Appointments); n > 0 {
				fmt.Printf("%s%2d+%d ", marker, cell.Date.Day(), n)
			} else {
				fmt.Printf("%s%2d   ", marker, cell.Date.Day())
			}
		}
		fmt.Println()
	}

	if selected != nil {
		if cell, ok := findDay(grid, *selected); ok {
			fmt.Printf("\n%s — %d appointment(s)\n", cell.Date.Format("Jan 02, 2006"), len(cell.Appointments))
			for _, inc := range cell.Display {
				at, _ := clinic.ParseStamp(inc.AppointmentDate)
				fmt.Printf("  %s  %s  %s (%s)\n",
					at.Format("3:04 PM"), patientName(state, inc.PatientID), inc.Title, inc.Status)
			}
			if cell.More > 0 {
				fmt.Printf("  +%d more\n", cell.More)
			}
		}
	}

	fmt.Println("\nThis month:")
	fmt.Printf("  Total appointments: %d\n", grid.Summary.Total)
	fmt.Printf("  Completed:          %d\n", grid.Summary.Completed)
	fmt.Printf("  Scheduled:          %d\n", grid.Summary.Scheduled)
	fmt.Printf("  Revenue:            $%d\n", grid.Summary.Revenue)
}

func findDay(grid calendar.Grid, day time.Time) (calendar.Cell, bool) {
	for _, week := range grid.Weeks {
		for _, cell := range week {
			if clinic.SameDay(cell.Date, day) {
				return cell, true
			}
		}
	}
	return calendar.Cell{}, false
}

func patientName(state clinic.AppState, patientID string) string {
	for _, p := range state.Patients {
		if p.ID == patientID {
			return p.Name
		}
	}
	return "(unknown)"
}
