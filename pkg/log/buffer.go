package log

import (
	"fmt"
	"io"
	"sync"
)

// CircularBuffer is an [io.Writer] that keeps only the most recent writes.
// It holds log output while an interactive form owns the terminal, so the
// records can be replayed afterwards. It is safe for concurrent use.
type CircularBuffer struct {
	entries [][]byte
	next    int
	count   int
	mu      sync.Mutex
}

// NewCircularBuffer creates a buffer holding up to capacity entries.
// Non-positive capacities default to 100.
func NewCircularBuffer(capacity int) *CircularBuffer {
	if capacity <= 0 {
		capacity = 100
	}

	return &CircularBuffer{entries: make([][]byte, capacity)}
}

// Write stores a copy of p as one entry, evicting the oldest entry when full.
func (cb *CircularBuffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.entries[cb.next] = append([]byte(nil), p...)
	cb.next = (cb.next + 1) % len(cb.entries)

	if cb.count < len(cb.entries) {
		cb.count++
	}

	return len(p), nil
}

// Entries returns copies of the stored entries, oldest first.
func (cb *CircularBuffer) Entries() [][]byte {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	out := make([][]byte, 0, cb.count)

	start := (cb.next - cb.count + len(cb.entries)) % len(cb.entries)
	for i := range cb.count {
		e := cb.entries[(start+i)%len(cb.entries)]
		out = append(out, append([]byte(nil), e...))
	}

	return out
}

// Size returns the number of stored entries.
func (cb *CircularBuffer) Size() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.count
}

// Capacity returns the maximum number of entries.
func (cb *CircularBuffer) Capacity() int {
	return len(cb.entries)
}

// IsFull reports whether older entries are being evicted.
func (cb *CircularBuffer) IsFull() bool {
	return cb.Size() == cb.Capacity()
}

// WriteTo writes all entries to w, oldest first. It implements [io.WriterTo].
func (cb *CircularBuffer) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, entry := range cb.Entries() {
		n, err := w.Write(entry)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("writing entry: %w", err)
		}
	}

	return total, nil
}
