package clinic

// Apply computes the next state for an action. It is pure: the input state
// is never mutated, and no action can fail. Actions outside the closed set
// (including nil) return the input unchanged with OutcomeApplied, matching
// the reducer's default branch.
func Apply(state AppState, action Action) (AppState, Outcome) {
	switch a := action.(type) {
	case Login:
		u := a.User
		state.CurrentUser = &u
		return state, OutcomeApplied

	case Logout:
		state.CurrentUser = nil
		return state, OutcomeApplied

	case AddPatient:
		patients := make([]Patient, 0, len(state.Patients)+1)
		patients = append(patients, state.Patients...)
		state.Patients = append(patients, a.Patient)
		return state, OutcomeApplied

	case UpdatePatient:
		patients := make([]Patient, len(state.Patients))
		outcome := OutcomeNotFound
		for i, p := range state.Patients {
			if p.ID == a.Patient.ID {
				patients[i] = a.Patient
				outcome = OutcomeApplied
				continue
			}
			patients[i] = p
		}
		state.Patients = patients
		return state, outcome

	case DeletePatient:
		// Cascade: the patient and every incident referencing it go in the
		// same transition, so no state with dangling incidents is observable.
		patients := make([]Patient, 0, len(state.Patients))
		outcome := OutcomeNotFound
		for _, p := range state.Patients {
			if p.ID == a.ID {
				outcome = OutcomeApplied
				continue
			}
			patients = append(patients, p)
		}
		incidents := make([]Incident, 0, len(state.Incidents))
		for _, inc := range state.Incidents {
			if inc.PatientID == a.ID {
				continue
			}
			incidents = append(incidents, inc)
		}
		state.Patients = patients
		state.Incidents = incidents
		return state, outcome

	case AddIncident:
		incidents := make([]Incident, 0, len(state.Incidents)+1)
		incidents = append(incidents, state.Incidents...)
		state.Incidents = append(incidents, a.Incident)
		return state, OutcomeApplied

	case UpdateIncident:
		incidents := make([]Incident, len(state.Incidents))
		outcome := OutcomeNotFound
		for i, inc := range state.Incidents {
			if inc.ID == a.Incident.ID {
				incidents[i] = a.Incident
				outcome = OutcomeApplied
				continue
			}
			incidents[i] = inc
		}
		state.Incidents = incidents
		return state, outcome

	case DeleteIncident:
		incidents := make([]Incident, 0, len(state.Incidents))
		outcome := OutcomeNotFound
		for _, inc := range state.Incidents {
			if inc.ID == a.ID {
				outcome = OutcomeApplied
				continue
			}
			incidents = append(incidents, inc)
		}
		state.Incidents = incidents
		return state, outcome

	case LoadData:
		return a.State, OutcomeApplied

	default:
		return state, OutcomeApplied
	}
}
