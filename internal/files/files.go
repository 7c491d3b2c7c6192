// Package files turns user-selected local files into incident attachments.
// Reads complete asynchronously by invoking a continuation; completions
// append to a caller-local Buffer, never to the store directly.
package files

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"dentalcenter.org/internal/clinic"
)

// MaxAttachmentSize is the hard per-file cap. An oversized file is rejected
// on its own; the rest of the batch continues.
const MaxAttachmentSize = 10 << 20 // 10 MB

var ErrTooLarge = errors.New("files: attachment exceeds the 10 MB limit")

// ReadAttachment reads one local file into a data-URL attachment.
func ReadAttachment(path string) (clinic.FileAttachment, error) {
	name := filepath.Base(path)
	fi, err := os.Stat(path)
	if err != nil {
		return clinic.FileAttachment{}, fmt.Errorf("stat %s: %w", name, err)
	}
	if fi.Size() > MaxAttachmentSize {
		return clinic.FileAttachment{}, fmt.Errorf("%s: %w", name, ErrTooLarge)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return clinic.FileAttachment{}, fmt.Errorf("read %s: %w", name, err)
	}
	// Size may have changed between stat and read.
	if int64(len(data)) > MaxAttachmentSize {
		return clinic.FileAttachment{}, fmt.Errorf("%s: %w", name, ErrTooLarge)
	}
	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return clinic.FileAttachment{
		Name: name,
		URL:  "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data),
		Type: ct,
		Size: int64(len(data)),
	}, nil
}

// Reader runs attachment reads without blocking the caller. Completions may
// interleave in any order.
type Reader struct {
	wg sync.WaitGroup
}

// Read starts one read and invokes done when it completes.
func (r *Reader) Read(path string, done func(clinic.FileAttachment, error)) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		done(ReadAttachment(path))
	}()
}

// Wait blocks until every started read has completed.
func (r *Reader) Wait() { r.wg.Wait() }

// ReadAll reads every path concurrently into buf, collecting per-file
// errors. A failed file never aborts the others.
func (r *Reader) ReadAll(paths []string, buf *Buffer) []error {
	var (
		mu   sync.Mutex
		errs []error
	)
	for _, p := range paths {
		r.Read(p, func(att clinic.FileAttachment, err error) {
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return
			}
			buf.Append(att)
		})
	}
	r.Wait()
	return errs
}

// Buffer is the caller-local staging area for an in-progress upload.
// Attachments are immutable once saved to an incident; the buffer is the
// only stage where append and remove are allowed. Each completion appends
// exactly once.
type Buffer struct {
	mu    sync.Mutex
	batch string
	atts  []clinic.FileAttachment
}

// NewBuffer starts an empty upload batch with a correlation id for audit.
func NewBuffer() *Buffer {
	return &Buffer{batch: uuid.NewString()}
}

// BatchID returns the batch correlation id.
func (b *Buffer) BatchID() string { return b.batch }

// Append adds one attachment to the batch.
func (b *Buffer) Append(att clinic.FileAttachment) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.atts = append(b.atts, att)
}

// Remove drops the attachment at index i before save. It reports whether
// the index was valid.
func (b *Buffer) Remove(i int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i >= len(b.atts) {
		return false
	}
	b.atts = append(b.atts[:i], b.atts[i+1:]...)
	return true
}

// Attachments returns a copy of the staged attachments in append order.
func (b *Buffer) Attachments() []clinic.FileAttachment {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]clinic.FileAttachment, len(b.atts))
	copy(out, b.atts)
	return out
}

// Len reports how many attachments are staged.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.atts)
}
