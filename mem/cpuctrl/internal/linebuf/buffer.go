// Package linebuf remembers the instruction lines recently brought into the
// L1 cache so that fetches to them can skip the request table.
package linebuf

import "log"

// Unused marks a slot that holds no line.
const Unused = ^uint64(0)

// An Entry is a slot of the buffer.
type Entry struct {
	Index       int
	LineAddress uint64
}

// A Buffer holds a fixed number of distinct lines. Slots are replaced in
// round-robin order.
type Buffer struct {
	entries []Entry
	victim  int
}

// New creates a buffer with the given number of slots.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		log.Panicf("line buffer capacity must be positive, got %d", capacity)
	}

	b := &Buffer{
		entries: make([]Entry, capacity),
	}
	b.Reset()

	return b
}

// Capacity returns the number of slots.
func (b *Buffer) Capacity() int {
	return len(b.entries)
}

// Probe returns true if the line is in the buffer.
func (b *Buffer) Probe(line uint64) bool {
	if line == Unused {
		return false
	}

	for _, e := range b.entries {
		if e.LineAddress == line {
			return true
		}
	}

	return false
}

// Insert places the line in the next slot. Inserting a line that is already
// present changes nothing.
func (b *Buffer) Insert(line uint64) {
	if b.Probe(line) {
		return
	}

	b.entries[b.victim].LineAddress = line
	b.victim = (b.victim + 1) % len(b.entries)
}

// Reset empties all the slots.
func (b *Buffer) Reset() {
	for i := range b.entries {
		b.entries[i] = Entry{Index: i, LineAddress: Unused}
	}

	b.victim = 0
}

// Entries returns a copy of the slots.
func (b *Buffer) Entries() []Entry {
	entries := make([]Entry, len(b.entries))
	copy(entries, b.entries)

	return entries
}
