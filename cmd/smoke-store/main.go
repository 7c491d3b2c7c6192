// smoke-store runs the store end to end against a real LevelDB medium:
// seed, cascade delete, then a reload from disk that must round-trip.
package main

import (
	"context"
	"log"
	"os"
	"reflect"

	"dentalcenter.org/internal/clinic"
	"dentalcenter.org/internal/storage"
	"dentalcenter.org/internal/store"
)

func main() {
	dir, err := os.MkdirTemp("", "smoke-store-*")
	if err != nil {
		log.Fatalf("tempdir: %v", err)
	}
	defer os.RemoveAll(dir)

	medium, err := storage.OpenLevelDB(dir + "/db")
	if err != nil {
		log.Fatalf("open medium: %v", err)
	}

	ctx := context.Background()
	st := store.New(medium)
	st.Hydrate(ctx)

	state := st.State()
	if len(state.Patients) != 2 || len(state.Incidents) != 3 {
		log.Fatalf("seed shape wrong: %d patients, %d incidents", len(state.Patients), len(state.Incidents))
	}

	if outcome := st.Dispatch(ctx, clinic.DeletePatient{ID: "p1"}); outcome != clinic.OutcomeApplied {
		log.Fatalf("delete p1: outcome %s", outcome)
	}

	state = st.State()
	if len(state.Patients) != 1 || state.Patients[0].ID != "p2" {
		log.Fatalf("cascade failed: patients %#v", state.Patients)
	}
	for _, inc := range state.Incidents {
		if inc.PatientID == "p1" {
			log.Fatalf("dangling incident %s", inc.ID)
		}
	}
	if len(state.Incidents) != 1 || state.Incidents[0].ID != "i3" {
		log.Fatalf("cascade failed: incidents %#v", state.Incidents)
	}

	// Reload from the same medium: a fresh store must see the same state.
	reloaded := store.New(medium)
	reloaded.Hydrate(ctx)
	if !reflect.DeepEqual(reloaded.State(), state) {
		log.Fatalf("round trip diverged")
	}

	if err := medium.Close(); err != nil {
		log.Fatalf("close medium: %v", err)
	}
	log.Println("smoke-store: PASS")
}
