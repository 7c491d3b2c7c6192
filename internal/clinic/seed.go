package clinic

func costOf(v int64) *int64 { return &v }

// Seed returns the canonical first-run snapshot: one admin, two patient
// accounts linked to two patient records, and three incidents. It is also
// the fixture the tests build on.
func Seed() AppState {
	return AppState{
		Users: []User{
			{ID: "1", Role: RoleAdmin, Email: "admin@clinic.local", Password: "admin123"},
			{ID: "2", Role: RolePatient, Email: "john@clinic.local", Password: "patient123", PatientID: "p1"},
			{ID: "3", Role: RolePatient, Email: "jane@clinic.local", Password: "patient123", PatientID: "p2"},
		},
		Patients: []Patient{
			{
				ID:               "p1",
				Name:             "John Doe",
				DOB:              "1990-05-10",
				Contact:          "1234567890",
				Email:            "john@clinic.local",
				Address:          "123 Main St, City, State 12345",
				HealthInfo:       "No known allergies. Regular checkups.",
				EmergencyContact: "Jane Doe - 0987654321",
				CreatedAt:        "2024-01-15T10:00:00Z",
			},
			{
				ID:               "p2",
				Name:             "Jane Smith",
				DOB:              "1985-08-22",
				Contact:          "0987654321",
				Email:            "jane@clinic.local",
				Address:          "456 Oak Ave, City, State 12345",
				HealthInfo:       "Diabetic. Requires special care.",
				EmergencyContact: "John Smith - 1234567890",
				CreatedAt:        "2024-02-10T14:30:00Z",
			},
		},
		Incidents: []Incident{
			{
				ID:              "i1",
				PatientID:       "p1",
				Title:           "Toothache Treatment",
				Description:     "Upper molar pain requiring root canal",
				Comments:        "Patient sensitive to cold. Local anesthesia applied.",
				AppointmentDate: "2025-01-15T10:00:00",
				Cost:            costOf(280),
				Treatment:       "Root canal therapy with temporary filling",
				Status:          StatusCompleted,
				NextDate:        "2025-02-15T10:00:00",
				Files:           []FileAttachment{},
				CreatedAt:       "2024-12-20T09:00:00Z",
			},
			{
				ID:              "i2",
				PatientID:       "p1",
				Title:           "Dental Cleaning",
				Description:     "Routine dental cleaning and examination",
				Comments:        "Regular maintenance. Good oral hygiene.",
				AppointmentDate: "2025-02-01T14:00:00",
				Status:          StatusScheduled,
				Files:           []FileAttachment{},
				CreatedAt:       "2024-12-25T11:00:00Z",
			},
			{
				ID:              "i3",
				PatientID:       "p2",
				Title:           "Cavity Filling",
				Description:     "Small cavity in lower left molar",
				Comments:        "Minor cavity. Composite filling recommended.",
				AppointmentDate: "2025-01-20T16:00:00",
				Cost:            costOf(150),
				Treatment:       "Composite filling",
				Status:          StatusCompleted,
				Files:           []FileAttachment{},
				CreatedAt:       "2024-12-18T13:00:00Z",
			},
		},
		CurrentUser: nil,
	}
}
