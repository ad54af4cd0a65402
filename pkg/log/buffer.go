package log

import (
	"fmt"
	"io"
	"sync"
)

const defaultBacklogSize = 100

// Backlog is a bounded [io.Writer] that keeps the most recent writes.
// Each Write call is stored as one record; once the backlog is full the
// oldest record is dropped. It is safe for concurrent use.
type Backlog struct {
	records [][]byte
	start   int
	count   int
	dropped int
	mu      sync.Mutex
}

// NewBacklog creates a [Backlog] holding at most size records.
// A non-positive size selects the default of 100.
func NewBacklog(size int) *Backlog {
	if size <= 0 {
		size = defaultBacklogSize
	}

	return &Backlog{records: make([][]byte, size)}
}

// Write implements [io.Writer]. The data is copied.
func (b *Backlog) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	rec := make([]byte, len(p))
	copy(rec, p)

	b.mu.Lock()
	defer b.mu.Unlock()

	end := (b.start + b.count) % len(b.records)
	b.records[end] = rec

	if b.count < len(b.records) {
		b.count++
	} else {
		b.start = (b.start + 1) % len(b.records)
		b.dropped++
	}

	return len(p), nil
}

// Records returns copies of the stored records, oldest first.
func (b *Backlog) Records() [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([][]byte, 0, b.count)
	for i := range b.count {
		rec := b.records[(b.start+i)%len(b.records)]
		out = append(out, append([]byte(nil), rec...))
	}

	return out
}

// Len returns the number of stored records.
func (b *Backlog) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.count
}

// Cap returns the maximum number of records.
func (b *Backlog) Cap() int {
	return len(b.records)
}

// Dropped returns how many records were discarded to make room.
func (b *Backlog) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.dropped
}

// WriteTo implements [io.WriterTo], writing all records oldest first.
func (b *Backlog) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, rec := range b.Records() {
		n, err := w.Write(rec)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write record: %w", err)
		}
	}

	return total, nil
}
