// Package storage is the persistent key-value medium the store mirrors
// itself into. The layout is two fixed keys: the full domain snapshot and
// the session, written independently (no transaction spans them).
package storage

const (
	// DataKey holds the JSON-serialized AppState snapshot.
	DataKey = "dental-center-data"
	// UserKey holds the JSON-serialized session user. Written on login,
	// removed on logout.
	UserKey = "dental-center-user"
)

// Medium is the minimal key-value surface the store needs. Get reports
// absence explicitly so callers can tell "no value" from an empty value.
type Medium interface {
	Get(key string) (value []byte, present bool, err error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}
