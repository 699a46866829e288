// Package hierarchy keeps the controllers of a memory hierarchy together so
// that their state and counters can be inspected as a whole.
package hierarchy

import (
	"io"

	"github.com/sarchlab/cpuctrl/datarecording"
	"github.com/sarchlab/cpuctrl/mem/mem"
)

// StatsTable is the table that RecordStats writes into.
const StatsTable = "controller_stats"

type statsEntry struct {
	Controller string
	Kind       string
	Accesses   uint64
	BufferHits uint64
	Coalesced  uint64
	Issued     uint64
	Completed  uint64
	Delivered  uint64
	Annulled   uint64
	Rejected   uint64
	Overdue    uint64
}

// A Hierarchy is a set of memory controllers.
type Hierarchy struct {
	controllers []mem.Controller
	nameIndex   map[string]int
}

// New creates an empty hierarchy.
func New() *Hierarchy {
	return &Hierarchy{
		nameIndex: make(map[string]int),
	}
}

// Register adds a controller to the hierarchy.
func (h *Hierarchy) Register(c mem.Controller) {
	name := c.Name()
	if _, found := h.nameIndex[name]; found {
		panic("controller " + name + " already registered")
	}

	h.controllers = append(h.controllers, c)
	h.nameIndex[name] = len(h.controllers) - 1
}

// Controller returns the controller with the given name.
func (h *Hierarchy) Controller(name string) (mem.Controller, bool) {
	idx, found := h.nameIndex[name]
	if !found {
		return nil, false
	}

	return h.controllers[idx], true
}

// Controllers returns all the controllers in registration order.
func (h *Hierarchy) Controllers() []mem.Controller {
	list := make([]mem.Controller, len(h.controllers))
	copy(list, h.controllers)

	return list
}

// TotalStats sums the counters of all the controllers.
func (h *Hierarchy) TotalStats() mem.Stats {
	total := mem.Stats{}
	for _, c := range h.controllers {
		total.Add(c.Stats())
	}

	return total
}

// PrintMap writes the connections of every controller.
func (h *Hierarchy) PrintMap(w io.Writer) {
	for _, c := range h.controllers {
		c.PrintMap(w)
	}
}

// Print writes the state of every controller.
func (h *Hierarchy) Print(w io.Writer) {
	for _, c := range h.controllers {
		c.Print(w)
	}
}

// RecordStats writes one row per controller and access kind.
func (h *Hierarchy) RecordStats(recorder datarecording.DataRecorder) {
	recorder.CreateTable(StatsTable, statsEntry{})

	for _, c := range h.controllers {
		stats := c.Stats()

		for k := range stats.Kinds {
			kind := mem.AccessKind(k)
			s := stats.Of(kind)

			recorder.InsertData(StatsTable, statsEntry{
				Controller: c.Name(),
				Kind:       kind.String(),
				Accesses:   s.Accesses,
				BufferHits: s.BufferHits,
				Coalesced:  s.Coalesced,
				Issued:     s.Issued,
				Completed:  s.Completed,
				Delivered:  s.Delivered,
				Annulled:   s.Annulled,
				Rejected:   s.Rejected,
				Overdue:    s.Overdue,
			})
		}
	}

	recorder.Flush()
}
