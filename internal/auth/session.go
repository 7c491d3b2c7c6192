package auth

import (
	"encoding/json"

	"dentalcenter.org/internal/clinic"
	"dentalcenter.org/internal/obs"
	"dentalcenter.org/internal/storage"
)

// The session lives under its own key so it survives a domain-data reset
// independently. The session write and the snapshot write are not atomic
// with each other; a crash between them can leave the two keys
// inconsistent, and the next hydration resolves that in favor of whatever
// each key holds.

// SaveSession persists the session user. Called on login only.
func SaveSession(m storage.Medium, u clinic.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	err = m.Put(storage.UserKey, data)
	obs.ObservePersist(storage.UserKey, err)
	return err
}

// LoadSession restores the persisted session if present and parseable.
// A parse failure clears the key and reports logged-out rather than
// propagating an error.
func LoadSession(m storage.Medium) (clinic.User, bool) {
	raw, present, err := m.Get(storage.UserKey)
	if err != nil || !present {
		return clinic.User{}, false
	}
	var u clinic.User
	if err := json.Unmarshal(raw, &u); err != nil {
		_ = m.Delete(storage.UserKey)
		return clinic.User{}, false
	}
	return u, true
}

// ClearSession removes the persisted session. Called on logout.
func ClearSession(m storage.Medium) error {
	return m.Delete(storage.UserKey)
}
