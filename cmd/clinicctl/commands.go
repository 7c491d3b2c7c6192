package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"dentalcenter.org/internal/audit"
	"dentalcenter.org/internal/auth"
	"dentalcenter.org/internal/clinic"
	"dentalcenter.org/internal/files"
	"dentalcenter.org/internal/ids"
	"dentalcenter.org/internal/storage"
	"dentalcenter.org/internal/store"
)

type app struct {
	ctx    context.Context
	store  *store.Store
	medium storage.Medium
}

// currentUser returns the active session, if any.
func (a *app) currentUser() *clinic.User {
	return a.store.State().CurrentUser
}

// requireAdmin exits unless the session carries the Admin role. Role
// gating here is a courtesy, not an enforcement boundary.
func (a *app) requireAdmin() {
	if !auth.IsAdmin(a.ctx) {
		fatalf("admin role required; log in as an admin first")
	}
}

func (a *app) login(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	user, err := auth.Authenticate(a.store.State().Users, *email, *password)
	if err != nil {
		fatalf("login failed: %v", err)
	}
	if err := auth.SaveSession(a.medium, user); err != nil {
		fatalf("persist session: %v", err)
	}
	a.ctx = auth.ContextWithUser(a.ctx, user.ID, user.Role)
	a.store.Dispatch(a.ctx, clinic.Login{User: user})
	_ = audit.LogEvent(a.ctx, "auth.login", map[string]any{"email": user.Email, "role": string(user.Role)})
	fmt.Printf("logged in as %s (%s)\n", user.Email, user.Role)
}

func (a *app) logout() {
	if err := auth.ClearSession(a.medium); err != nil {
		fatalf("clear session: %v", err)
	}
	a.store.Dispatch(a.ctx, clinic.Logout{})
	_ = audit.LogEvent(a.ctx, "auth.logout", nil)
	fmt.Println("logged out")
}

func (a *app) whoami() {
	cur := a.currentUser()
	if cur == nil {
		fmt.Println("not logged in")
		return
	}
	fmt.Printf("%s (%s)\n", cur.Email, cur.Role)
	if cur.PatientID != "" {
		fmt.Printf("patient record: %s\n", cur.PatientID)
	}
}

func (a *app) patients(args []string) {
	if len(args) == 0 {
		fatalf("usage: patients list|add|edit|rm")
	}
	switch args[0] {
	case "list":
		a.listPatients()
	case "add":
		a.addPatient(args[1:])
	case "edit":
		a.editPatient(args[1:])
	case "rm":
		a.removePatient(args[1:])
	default:
		fatalf("unknown patients subcommand %q", args[0])
	}
}

// visiblePatients narrows the roster to what the session may see: a
// patient session gets only its own record, everyone else the full list.
func visiblePatients(state clinic.AppState) []clinic.Patient {
	cur := state.CurrentUser
	if cur == nil || cur.Role != clinic.RolePatient {
		return state.Patients
	}
	for _, p := range state.Patients {
		if p.ID == cur.PatientID {
			return []clinic.Patient{p}
		}
	}
	return nil
}

func (a *app) listPatients() {
	state := a.store.State()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDOB\tCONTACT\tEMAIL")
	for _, p := range visiblePatients(state) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.DOB, p.Contact, p.Email)
	}
	_ = w.Flush()
}

func (a *app) addPatient(args []string) {
	a.requireAdmin()
	fs := flag.NewFlagSet("patients add", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	dob := fs.String("dob", "", "date of birth (YYYY-MM-DD)")
	contact := fs.String("contact", "", "phone number")
	email := fs.String("email", "", "email address")
	address := fs.String("address", "", "postal address")
	health := fs.String("health", "", "health info")
	emergency := fs.String("emergency", "", "emergency contact")
	_ = fs.Parse(args)

	if *name == "" {
		fatalf("-name is required")
	}
	p := clinic.Patient{
		ID:               ids.New(),
		Name:             *name,
		DOB:              *dob,
		Contact:          *contact,
		Email:            *email,
		Address:          *address,
		HealthInfo:       *health,
		EmergencyContact: *emergency,
		CreatedAt:        time.Now().UTC().Format(time.RFC3339),
	}
	a.store.Dispatch(a.ctx, clinic.AddPatient{Patient: p})
	fmt.Printf("added patient %s (%s)\n", p.Name, p.ID)
}

func findPatient(state clinic.AppState, id string) (clinic.Patient, bool) {
	for _, p := range state.Patients {
		if p.ID == id {
			return p, true
		}
	}
	return clinic.Patient{}, false
}

func findIncident(state clinic.AppState, id string) (clinic.Incident, bool) {
	for _, inc := range state.Incidents {
		if inc.ID == id {
			return inc, true
		}
	}
	return clinic.Incident{}, false
}

// editPatient updates only the fields whose flags were given; everything
// else keeps its stored value.
func (a *app) editPatient(args []string) {
	a.requireAdmin()
	fs := flag.NewFlagSet("patients edit", flag.ExitOnError)
	id := fs.String("id", "", "patient id")
	name := fs.String("name", "", "full name")
	dob := fs.String("dob", "", "date of birth (YYYY-MM-DD)")
	contact := fs.String("contact", "", "phone number")
	email := fs.String("email", "", "email address")
	address := fs.String("address", "", "postal address")
	health := fs.String("health", "", "health info")
	emergency := fs.String("emergency", "", "emergency contact")
	_ = fs.Parse(args)

	if *id == "" {
		fatalf("-id is required")
	}
	p, ok := findPatient(a.store.State(), *id)
	if !ok {
		fmt.Printf("no patient with id %s\n", *id)
		return
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			p.Name = *name
		case "dob":
			p.DOB = *dob
		case "contact":
			p.Contact = *contact
		case "email":
			p.Email = *email
		case "address":
			p.Address = *address
		case "health":
			p.HealthInfo = *health
		case "emergency":
			p.EmergencyContact = *emergency
		}
	})

	a.store.Dispatch(a.ctx, clinic.UpdatePatient{Patient: p})
	fmt.Printf("updated patient %s (%s)\n", p.Name, p.ID)
}

func (a *app) removePatient(args []string) {
	a.requireAdmin()
	fs := flag.NewFlagSet("patients rm", flag.ExitOnError)
	id := fs.String("id", "", "patient id")
	_ = fs.Parse(args)

	if *id == "" {
		fatalf("-id is required")
	}
	outcome := a.store.Dispatch(a.ctx, clinic.DeletePatient{ID: *id})
	if outcome == clinic.OutcomeNotFound {
		fmt.Printf("no patient with id %s\n", *id)
		return
	}
	fmt.Printf("removed patient %s and their appointments\n", *id)
}

func (a *app) appointments(args []string) {
	if len(args) == 0 {
		fatalf("usage: appointments list|add|edit|rm")
	}
	switch args[0] {
	case "list":
		a.listAppointments(args[1:])
	case "add":
		a.addAppointment(args[1:])
	case "edit":
		a.editAppointment(args[1:])
	case "rm":
		a.removeAppointment(args[1:])
	default:
		fatalf("unknown appointments subcommand %q", args[0])
	}
}

func (a *app) listAppointments(args []string) {
	fs := flag.NewFlagSet("appointments list", flag.ExitOnError)
	patientID := fs.String("patient", "", "filter by patient id")
	_ = fs.Parse(args)

	state := a.store.State()
	// A patient session only ever sees its own records.
	if cur := state.CurrentUser; cur != nil && cur.Role == clinic.RolePatient {
		*patientID = cur.PatientID
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPATIENT\tDATE\tTITLE\tSTATUS\tCOST\tFILES")
	for _, inc := range state.Incidents {
		if *patientID != "" && inc.PatientID != *patientID {
			continue
		}
		cost := "-"
		if inc.HasCost() {
			cost = fmt.Sprintf("$%d", inc.CostValue())
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			inc.ID, inc.PatientID, inc.AppointmentDate, inc.Title, inc.Status, cost, len(inc.Files))
	}
	_ = w.Flush()
}

type fileList []string

func (f *fileList) String() string     { return strings.Join(*f, ",") }
func (f *fileList) Set(v string) error { *f = append(*f, v); return nil }

func (a *app) addAppointment(args []string) {
	a.requireAdmin()
	fs := flag.NewFlagSet("appointments add", flag.ExitOnError)
	patientID := fs.String("patient", "", "patient id")
	title := fs.String("title", "", "appointment title")
	desc := fs.String("desc", "", "description")
	comments := fs.String("comments", "", "comments")
	date := fs.String("date", "", "appointment datetime (YYYY-MM-DDTHH:MM:SS)")
	costFlag := fs.Int64("cost", -1, "treatment cost (omit for none)")
	treatment := fs.String("treatment", "", "treatment performed")
	status := fs.String("status", string(clinic.StatusScheduled), "status")
	next := fs.String("next", "", "next appointment datetime")
	var attachments fileList
	fs.Var(&attachments, "file", "attach a local file (repeatable)")
	_ = fs.Parse(args)

	if *patientID == "" || *title == "" || *date == "" {
		fatalf("-patient, -title and -date are required")
	}
	if _, err := clinic.ParseStamp(*date); err != nil {
		fatalf("bad -date %q: %v", *date, err)
	}

	inc := clinic.Incident{
		ID:              ids.New(),
		PatientID:       *patientID,
		Title:           *title,
		Description:     *desc,
		Comments:        *comments,
		AppointmentDate: *date,
		Treatment:       *treatment,
		Status:          clinic.Status(*status),
		NextDate:        *next,
		Files:           []clinic.FileAttachment{},
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}
	if *costFlag >= 0 {
		c := *costFlag
		inc.Cost = &c
	}

	if len(attachments) > 0 {
		var reader files.Reader
		buf := files.NewBuffer()
		for _, err := range reader.ReadAll(attachments, buf) {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		inc.Files = buf.Attachments()
		_ = audit.LogEvent(a.ctx, "files.upload", map[string]any{
			"batch": buf.BatchID(), "attached": buf.Len(), "requested": len(attachments),
		})
	}

	a.store.Dispatch(a.ctx, clinic.AddIncident{Incident: inc})
	fmt.Printf("added appointment %s (%s) with %d file(s)\n", inc.Title, inc.ID, len(inc.Files))
}

// editAppointment covers the day-to-day admin flow: reschedule with
// -date, or close out a visit with -status Completed -cost -treatment
// and an optional -next follow-up. Only flags that were given change the
// record; -cost -1 clears a previously recorded cost, and -file appends
// attachments to the existing ones.
func (a *app) editAppointment(args []string) {
	a.requireAdmin()
	fs := flag.NewFlagSet("appointments edit", flag.ExitOnError)
	id := fs.String("id", "", "appointment id")
	title := fs.String("title", "", "appointment title")
	desc := fs.String("desc", "", "description")
	comments := fs.String("comments", "", "comments")
	date := fs.String("date", "", "new appointment datetime (YYYY-MM-DDTHH:MM:SS)")
	costFlag := fs.Int64("cost", -1, "treatment cost (-1 clears)")
	treatment := fs.String("treatment", "", "treatment performed")
	status := fs.String("status", "", "new status")
	next := fs.String("next", "", "next appointment datetime")
	var attachments fileList
	fs.Var(&attachments, "file", "attach a local file (repeatable)")
	_ = fs.Parse(args)

	if *id == "" {
		fatalf("-id is required")
	}
	inc, ok := findIncident(a.store.State(), *id)
	if !ok {
		fmt.Printf("no appointment with id %s\n", *id)
		return
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			inc.Title = *title
		case "desc":
			inc.Description = *desc
		case "comments":
			inc.Comments = *comments
		case "date":
			if _, err := clinic.ParseStamp(*date); err != nil {
				fatalf("bad -date %q: %v", *date, err)
			}
			inc.AppointmentDate = *date
		case "cost":
			if *costFlag >= 0 {
				c := *costFlag
				inc.Cost = &c
			} else {
				inc.Cost = nil
			}
		case "treatment":
			inc.Treatment = *treatment
		case "status":
			inc.Status = clinic.Status(*status)
		case "next":
			inc.NextDate = *next
		}
	})

	if len(attachments) > 0 {
		var reader files.Reader
		buf := files.NewBuffer()
		for _, err := range reader.ReadAll(attachments, buf) {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		inc.Files = append(inc.Files, buf.Attachments()...)
		_ = audit.LogEvent(a.ctx, "files.upload", map[string]any{
			"batch": buf.BatchID(), "attached": buf.Len(), "requested": len(attachments),
		})
	}

	a.store.Dispatch(a.ctx, clinic.UpdateIncident{Incident: inc})
	fmt.Printf("updated appointment %s (%s)\n", inc.ID, inc.Status)
}

func (a *app) removeAppointment(args []string) {
	a.requireAdmin()
	fs := flag.NewFlagSet("appointments rm", flag.ExitOnError)
	id := fs.String("id", "", "appointment id")
	_ = fs.Parse(args)

	if *id == "" {
		fatalf("-id is required")
	}
	outcome := a.store.Dispatch(a.ctx, clinic.DeleteIncident{ID: *id})
	if outcome == clinic.OutcomeNotFound {
		fmt.Printf("no appointment with id %s\n", *id)
		return
	}
	fmt.Printf("removed appointment %s\n", *id)
}
