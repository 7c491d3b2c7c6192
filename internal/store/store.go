// Package store owns the authoritative application state. Every mutation
// goes through Dispatch, which applies the pure transition function,
// mirrors the snapshot to the persistent medium, and fans the new state out
// to subscribers. Construct exactly one Store per process and pass it down
// explicitly.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"dentalcenter.org/internal/audit"
	"dentalcenter.org/internal/auth"
	"dentalcenter.org/internal/clinic"
	"dentalcenter.org/internal/obs"
	"dentalcenter.org/internal/storage"
)

// Store holds the AppState and serializes transitions: one dispatch runs
// to completion before the next is accepted.
type Store struct {
	mu     sync.Mutex
	state  clinic.AppState
	medium storage.Medium

	subMu sync.RWMutex
	subs  map[int]chan clinic.AppState
	next  int
}

// New creates a store over the given medium, initialized with the seed
// snapshot. Call Hydrate before dispatching anything else to pick up
// persisted data.
func New(medium storage.Medium) *Store {
	return &Store{
		state:  clinic.Seed(),
		medium: medium,
		subs:   make(map[int]chan clinic.AppState),
	}
}

// Hydrate loads the persisted snapshot (if well-formed) via LoadData, then
// restores the persisted session (if parseable) via Login. Malformed
// snapshot data is discarded, never propagated; a malformed session clears
// its key and leaves the store logged out. No-op persistence errors are
// treated as absence.
func (s *Store) Hydrate(ctx context.Context) {
	raw, present, err := s.medium.Get(storage.DataKey)
	if err != nil {
		obs.LogEvent(map[string]any{"level": "warn", "msg": "snapshot read failed", "error": err.Error()})
	} else if present {
		var snap clinic.AppState
		if err := json.Unmarshal(raw, &snap); err != nil {
			obs.LogEvent(map[string]any{"level": "warn", "msg": "discarding malformed snapshot", "error": err.Error()})
		} else {
			s.Dispatch(ctx, clinic.LoadData{State: snap})
		}
	}

	if u, ok := auth.LoadSession(s.medium); ok {
		s.Dispatch(ctx, clinic.Login{User: u})
	}
}

// Dispatch applies one action and returns its outcome. The snapshot write
// is best-effort: on failure the in-memory state stays authoritative and
// the error is logged and counted, never returned. The write, the entity
// gauges and the subscriber publish all happen inside the transition's
// critical section, so the medium and every subscriber observe states in
// dispatch order even under concurrent dispatchers.
func (s *Store) Dispatch(ctx context.Context, action clinic.Action) clinic.Outcome {
	s.mu.Lock()
	next, outcome := clinic.Apply(s.state, action)
	s.state = next
	snapshot := next.Clone()
	s.persist(snapshot)
	obs.SetEntityCounts(len(snapshot.Users), len(snapshot.Patients), len(snapshot.Incidents))
	s.publish(snapshot)
	s.mu.Unlock()

	obs.ObserveAction(clinic.ActionName(action), string(outcome))
	_ = audit.LogEvent(ctx, "store.dispatch", map[string]any{
		"action":  clinic.ActionName(action),
		"outcome": string(outcome),
	})
	return outcome
}

// State returns a defensive copy of the current state.
func (s *Store) State() clinic.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers for post-transition snapshots. Slow subscribers drop
// updates instead of blocking dispatch; the channel closes when ctx ends.
func (s *Store) Subscribe(ctx context.Context) <-chan clinic.AppState {
	ch := make(chan clinic.AppState, 16)

	s.subMu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.subMu.Unlock()

	go func() {
		<-ctx.Done()
		s.subMu.Lock()
		delete(s.subs, id)
		close(ch)
		s.subMu.Unlock()
	}()

	return ch
}

func (s *Store) publish(snapshot clinic.AppState) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- snapshot:
		default:
			// Drop when the subscriber is slow; the next snapshot supersedes.
		}
	}
}

func (s *Store) persist(snapshot clinic.AppState) {
	data, err := json.Marshal(snapshot)
	if err == nil {
		err = s.medium.Put(storage.DataKey, data)
	}
	obs.ObservePersist(storage.DataKey, err)
	if err != nil {
		obs.LogEvent(map[string]any{"level": "warn", "msg": "snapshot write failed", "error": err.Error()})
	}
}
