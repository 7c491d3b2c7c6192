package clinic

// Role tags a user account. It gates which dashboard a session sees; it is
// not an enforcement boundary.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RolePatient Role = "Patient"
)

// Status is the treatment state of an incident. Any status may move to any
// other status; there is no enforced transition graph.
type Status string

const (
	StatusScheduled  Status = "Scheduled"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
	StatusInProgress Status = "In Progress"
)

// User is an account created at seed time. PatientID is set iff the role is
// Patient and links the account to exactly one patient record.
type User struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	PatientID string `json:"patientId,omitempty"`
}

// Patient is the root entity for incident ownership. ID is the join key for
// Incident.PatientID.
type Patient struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	DOB              string `json:"dob"`
	Contact          string `json:"contact"`
	Email            string `json:"email"`
	Address          string `json:"address"`
	HealthInfo       string `json:"healthInfo"`
	EmergencyContact string `json:"emergencyContact"`
	CreatedAt        string `json:"createdAt"`
}

// FileAttachment is an opaque payload addressed by a data URL. Immutable
// once attached to an incident.
type FileAttachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// Incident is a single appointment/treatment record. Cost is in whole
// currency units; nil means no cost was recorded.
type Incident struct {
	ID              string           `json:"id"`
	PatientID       string           `json:"patientId"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Comments        string           `json:"comments"`
	AppointmentDate string           `json:"appointmentDate"`
	Cost            *int64           `json:"cost,omitempty"`
	Treatment       string           `json:"treatment,omitempty"`
	Status          Status           `json:"status"`
	NextDate        string           `json:"nextDate,omitempty"`
	Files           []FileAttachment `json:"files"`
	CreatedAt       string           `json:"createdAt"`
}

// AppState is the full authoritative snapshot. CurrentUser is a by-value
// session copy taken at login; nil means logged out.
type AppState struct {
	Users       []User     `json:"users"`
	Patients    []Patient  `json:"patients"`
	Incidents   []Incident `json:"incidents"`
	CurrentUser *User      `json:"currentUser"`
}

// Clone returns a copy whose collections do not share backing arrays with
// the receiver. Attachment slices are copied too so no caller can reach
// back into authoritative state.
func (s AppState) Clone() AppState {
	out := AppState{
		Users:     make([]User, len(s.Users)),
		Patients:  make([]Patient, len(s.Patients)),
		Incidents: make([]Incident, len(s.Incidents)),
	}
	copy(out.Users, s.Users)
	copy(out.Patients, s.Patients)
	for i, inc := range s.Incidents {
		if inc.Files != nil {
			files := make([]FileAttachment, len(inc.Files))
			copy(files, inc.Files)
			inc.Files = files
		}
		out.Incidents[i] = inc
	}
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		out.CurrentUser = &u
	}
	return out
}

// CostValue returns the recorded cost or 0 when none is present.
func (i Incident) CostValue() int64 {
	if i.Cost == nil {
		return 0
	}
	return *i.Cost
}

// HasCost reports whether a cost was recorded at all.
func (i Incident) HasCost() bool { return i.Cost != nil }
