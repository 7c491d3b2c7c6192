package clinic

// Action is the closed set of state transitions accepted by the reducer.
// Implementations are plain payload structs; Name is used for metrics and
// audit labels.
type Action interface {
	Name() string
}

// Outcome reports whether an action found its target. Update/delete of an
// absent id is a silent no-op on the state; the outcome makes the miss
// observable to callers that care.
type Outcome string

const (
	OutcomeApplied  Outcome = "applied"
	OutcomeNotFound Outcome = "not_found"
)

// Login replaces the current session with the given user. No credential
// validation happens here; callers match credentials before dispatching.
type Login struct {
	User User
}

// Logout clears the current session.
type Logout struct{}

// AddPatient appends a patient. The reducer performs no id uniqueness
// check; callers own id generation.
type AddPatient struct {
	Patient Patient
}

// UpdatePatient replaces the patient with a matching id; no-op when absent.
type UpdatePatient struct {
	Patient Patient
}

// DeletePatient removes the patient and, in the same transition, every
// incident referencing it.
type DeletePatient struct {
	ID string
}

// AddIncident appends an incident. Existence of the referenced patient is
// not checked here.
type AddIncident struct {
	Incident Incident
}

// UpdateIncident replaces the incident with a matching id; no-op when absent.
type UpdateIncident struct {
	Incident Incident
}

// DeleteIncident removes the incident with the given id.
type DeleteIncident struct {
	ID string
}

// LoadData replaces the whole state with an externally supplied snapshot.
// Used to hydrate from the persistent medium at startup.
type LoadData struct {
	State AppState
}

func (Login) Name() string          { return "login" }
func (Logout) Name() string         { return "logout" }
func (AddPatient) Name() string     { return "add_patient" }
func (UpdatePatient) Name() string  { return "update_patient" }
func (DeletePatient) Name() string  { return "delete_patient" }
func (AddIncident) Name() string    { return "add_incident" }
func (UpdateIncident) Name() string { return "update_incident" }
func (DeleteIncident) Name() string { return "delete_incident" }
func (LoadData) Name() string       { return "load_data" }

// ActionName labels an action for logs and metrics; nil maps to "none".
func ActionName(a Action) string {
	if a == nil {
		return "none"
	}
	return a.Name()
}
