// Package ids mints identifiers for new patient and appointment records.
package ids

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns a fresh ULID. Ids sort by creation time, so record listings
// and key-order scans come out in insert order without a sequence counter.
// The monotonic entropy source is not concurrency-safe, hence the lock.
func New() string {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
