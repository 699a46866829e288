// Package reqtable tracks the accesses a controller has in flight.
//
// Accesses to the same line of the same kind are chained behind the first one,
// which is the only one forwarded to the cache. When the first one completes,
// the whole chain is released in admission order.
package reqtable

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/sarchlab/cpuctrl/mem/mem"
)

var (
	// ErrTableFull is returned when there is no free entry to admit an
	// access.
	ErrTableFull = errors.New("request table is full")

	// ErrUnmatchedCompletion is returned when a completion does not match
	// any tracked access.
	ErrUnmatchedCompletion = errors.New("completion matches no tracked access")

	// ErrNotHead is returned when a completion targets an access that waits
	// behind another one.
	ErrNotHead = errors.New("completion targets a dependent access")

	// ErrAlreadyCompleted is returned when an access completes twice.
	ErrAlreadyCompleted = errors.New("access already completed")

	// ErrNotIssued is returned when a completion targets a head whose
	// transaction has not been forwarded yet.
	ErrNotIssued = errors.New("completion targets an access not yet forwarded")
)

// Admission reports where an access was placed.
type Admission struct {
	Index     int
	Head      bool
	DependsOn int
}

// A Table is a fixed-size arena of entries with a free list.
type Table struct {
	entries  []Entry
	free     []int
	admitted uint64
}

// NewTable creates a table with the given number of entries.
func NewTable(capacity int) *Table {
	if capacity <= 0 {
		log.Panicf("request table capacity must be positive, got %d", capacity)
	}

	t := &Table{
		entries: make([]Entry, capacity),
		free:    make([]int, 0, capacity),
	}

	for i := capacity - 1; i >= 0; i-- {
		t.entries[i].reset()
		t.free = append(t.free, i)
	}

	return t
}

// Capacity returns the number of entries.
func (t *Table) Capacity() int {
	return len(t.entries)
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	return len(t.entries) - len(t.free)
}

// IsFull returns true if no access can be admitted.
func (t *Table) IsFull() bool {
	return len(t.free) == 0
}

// Admit binds the access to a free entry. If another access of the same kind
// to the same line is tracked and not annulled, the new access is appended to
// the end of its chain. Otherwise, the access becomes the head of a new chain
// and the caller is responsible for forwarding it.
func (t *Table) Admit(req *mem.AccessReq, line uint64) (Admission, error) {
	if t.IsFull() {
		return Admission{}, ErrTableFull
	}

	tail := t.findChainTail(req.Kind, line)

	idx := t.free[len(t.free)-1]
	t.free = t.free[:len(t.free)-1]

	t.admitted++
	t.entries[idx] = Entry{
		Req:       req,
		Cycles:    -1,
		DependsOn: tail,
		Next:      None,
		Line:      line,
		Kind:      req.Kind,
		admitted:  t.admitted,
	}

	if tail != None {
		t.entries[tail].Next = idx
	}

	return Admission{
		Index:     idx,
		Head:      tail == None,
		DependsOn: tail,
	}, nil
}

func (t *Table) findChainTail(kind mem.AccessKind, line uint64) int {
	for i := range t.entries {
		e := &t.entries[i]
		if e.IsFree() || e.Annulled || e.Kind != kind || e.Line != line {
			continue
		}

		tail := i
		for t.entries[tail].Next != None {
			tail = t.entries[tail].Next
		}

		return tail
	}

	return None
}

// Find returns the index of the live entry that tracks the access with the
// given ID.
func (t *Table) Find(reqID string) (int, bool) {
	for i, e := range t.entries {
		if e.Req != nil && e.Req.ID == reqID {
			return i, true
		}
	}

	return None, false
}

// Entry returns a copy of the entry at the index.
func (t *Table) Entry(idx int) Entry {
	return t.entries[idx]
}

// Entries returns a copy of all the entries, including the free ones.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, len(t.entries))
	copy(entries, t.entries)

	return entries
}

// SetCycles sets the countdown of a live entry.
func (t *Table) SetCycles(idx, cycles int) {
	t.mustBeLive(idx)
	t.entries[idx].Cycles = cycles
}

// MarkIssued records that the head's transaction has been accepted by the
// interconnect.
func (t *Table) MarkIssued(idx int) {
	t.mustBeLive(idx)
	t.entries[idx].Issued = true
}

// Unissued returns the heads that have not been accepted by the interconnect,
// in admission order.
func (t *Table) Unissued() []int {
	list := make([]int, 0)

	for i, e := range t.entries {
		if e.IsHead() && !e.Issued {
			list = append(list, i)
		}
	}

	sort.Slice(list, func(a, b int) bool {
		return t.entries[list[a]].admitted < t.entries[list[b]].admitted
	})

	return list
}

// Age decrements every positive countdown by one. It returns the entries whose
// countdown has just reached zero while still waiting for completion.
func (t *Table) Age() []int {
	overdue := make([]int, 0)

	for i := range t.entries {
		e := &t.entries[i]
		if e.IsFree() || e.Cycles <= 0 {
			continue
		}

		e.Cycles--

		if e.Cycles == 0 && !t.headOf(i).Completed {
			overdue = append(overdue, i)
		}
	}

	return overdue
}

func (t *Table) headOf(idx int) Entry {
	for t.entries[idx].DependsOn != None {
		idx = t.entries[idx].DependsOn
	}

	return t.entries[idx]
}

// Annul marks the live entry of the access so that its completion is not
// delivered. It returns false if the access is not tracked or is already
// annulled.
func (t *Table) Annul(reqID string) (int, bool) {
	idx, found := t.Find(reqID)
	if !found {
		return None, false
	}

	if t.entries[idx].Annulled {
		return idx, false
	}

	t.entries[idx].Annulled = true

	return idx, true
}

// Complete records that the transaction of the head with the given ID has
// completed.
func (t *Table) Complete(reqID string) error {
	idx, found := t.Find(reqID)
	if !found {
		return fmt.Errorf("%w: %s", ErrUnmatchedCompletion, reqID)
	}

	e := &t.entries[idx]
	if e.DependsOn != None {
		return fmt.Errorf("%w: %s waits on entry %d",
			ErrNotHead, reqID, e.DependsOn)
	}

	if e.Completed {
		return fmt.Errorf("%w: %s", ErrAlreadyCompleted, reqID)
	}

	if !e.Issued {
		return fmt.Errorf("%w: %s", ErrNotIssued, reqID)
	}

	e.Completed = true

	return nil
}

// CompletedHeads returns the heads whose transactions have completed, in slot
// order.
func (t *Table) CompletedHeads() []int {
	list := make([]int, 0)

	for i, e := range t.entries {
		if e.IsHead() && e.Completed {
			list = append(list, i)
		}
	}

	return list
}

// Finalize releases the head at the index and every access chained behind it,
// in admission order. The deliver function is called for each released entry
// that is not annulled. Finalize returns the number of entries freed;
// finalizing a free entry frees nothing.
func (t *Table) Finalize(idx int, deliver func(Entry)) int {
	if t.entries[idx].IsFree() {
		return 0
	}

	if t.entries[idx].DependsOn != None {
		log.Panicf("entry %d is not the head of its chain", idx)
	}

	freed := 0

	for idx != None {
		e := t.entries[idx]
		next := e.Next

		if !e.Annulled && deliver != nil {
			deliver(e)
		}

		t.entries[idx].reset()
		t.free = append(t.free, idx)
		freed++

		idx = next
	}

	return freed
}

func (t *Table) mustBeLive(idx int) {
	if t.entries[idx].IsFree() {
		log.Panicf("entry %d is free", idx)
	}
}
