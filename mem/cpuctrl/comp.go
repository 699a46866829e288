// Package cpuctrl provides the controller that sits between a core and its
// L1 instruction and data caches.
//
// The controller tracks every access the core has in flight. Accesses to a
// line that already has an outstanding transaction are held back and
// released together with it, so each line is fetched only once. Instruction
// fetches to lines that have recently been brought in hit in a small buffer
// and complete without entering the request table.
package cpuctrl

import (
	"errors"
	"log"

	"github.com/sarchlab/cpuctrl/mem/cpuctrl/internal/linebuf"
	"github.com/sarchlab/cpuctrl/mem/cpuctrl/internal/reqtable"
	"github.com/sarchlab/cpuctrl/mem/mem"
	"github.com/sarchlab/cpuctrl/sim/modeling"
)

// AccessStatus tells what happened to an access presented to the controller.
type AccessStatus int

// Outcomes of an access.
const (
	// AccessRejected means the request table is full. The requester should
	// retry later.
	AccessRejected AccessStatus = iota

	// AccessQueued means the access is tracked. The core is woken up when it
	// completes.
	AccessQueued

	// AccessBufferHit means the instruction line is present and the access is
	// already complete. The core is not woken up for it.
	AccessBufferHit
)

func (s AccessStatus) String() string {
	switch s {
	case AccessRejected:
		return "rejected"
	case AccessQueued:
		return "queued"
	case AccessBufferHit:
		return "buffer_hit"
	default:
		return "unknown"
	}
}

// Comp is a CPU controller.
type Comp struct {
	*modeling.TickingComponent

	geometry mem.LineGeometry
	table    *reqtable.Table
	buffer   *linebuf.Buffer
	routes   []Interconnect
	latency  [mem.NumAccessKinds]int

	instructionInterconnect Interconnect
	dataInterconnect        Interconnect
	core                    Core

	stats     mem.Stats
	lastCycle uint64
}

// Geometry returns how addresses are mapped to lines.
func (c *Comp) Geometry() mem.LineGeometry {
	return c.geometry
}

// RegisterInstructionInterconnect binds the interconnect to the instruction
// cache.
func (c *Comp) RegisterInstructionInterconnect(ic Interconnect) {
	c.instructionInterconnect = ic
}

// RegisterDataInterconnect binds the interconnect to the data cache.
func (c *Comp) RegisterDataInterconnect(ic Interconnect) {
	c.dataInterconnect = ic
}

// RegisterCore sets the core to wake up when accesses complete.
func (c *Comp) RegisterCore(core Core) {
	c.core = core
}

// IsFull returns true if the controller cannot track another access.
func (c *Comp) IsFull() bool {
	return c.table.IsFull()
}

// IsCacheAvailable returns true if the interconnect of the given kind can
// accept a transaction now.
func (c *Comp) IsCacheAvailable(isInstruction bool) bool {
	ic := c.dataInterconnect
	if isInstruction {
		ic = c.instructionInterconnect
	}

	return ic != nil && ic.CanSend()
}

// Access presents an access to the controller using the bound
// interconnects.
func (c *Comp) Access(req *mem.AccessReq) AccessStatus {
	return c.AccessFastPath(nil, req)
}

// AccessFastPath presents an access to the controller. Instruction fetches
// to buffered lines complete immediately. Other accesses are admitted to the
// request table. If ic is not nil, the access is forwarded through it instead
// of the bound interconnect.
func (c *Comp) AccessFastPath(ic Interconnect, req *mem.AccessReq) AccessStatus {
	c.stats.Of(req.Kind).Accesses++

	line := c.geometry.LineAddress(req)
	if req.IsInstruction() && c.buffer.Probe(line) {
		c.stats.Of(req.Kind).BufferHits++
		c.traceBufferHit(req)

		return AccessBufferHit
	}

	if !c.admit(ic, req, line) {
		return AccessRejected
	}

	return AccessQueued
}

// HandleRequestCallback admits an access that arrives through a callback. It
// does not consult the instruction buffer. It returns false if the request
// table is full.
func (c *Comp) HandleRequestCallback(req *mem.AccessReq) bool {
	c.stats.Of(req.Kind).Accesses++

	return c.admit(nil, req, c.geometry.LineAddress(req))
}

func (c *Comp) admit(ic Interconnect, req *mem.AccessReq, line uint64) bool {
	admission, err := c.table.Admit(req, line)
	if errors.Is(err, reqtable.ErrTableFull) {
		c.stats.Of(req.Kind).Rejected++
		return false
	}

	c.table.SetCycles(admission.Index, c.latency[req.Kind])
	c.traceReqStart(req)

	if admission.Head {
		c.routes[admission.Index] = ic
		c.forward(admission.Index)
	} else {
		c.stats.Of(req.Kind).Coalesced++
		c.traceCoalesced(req)
	}

	c.TickLater()

	return true
}

func (c *Comp) forward(idx int) bool {
	entry := c.table.Entry(idx)

	ic := c.routes[idx]
	if ic == nil {
		ic = c.boundInterconnect(entry.Kind)
	}

	if !ic.CanSend() || !ic.Send(entry.Req) {
		return false
	}

	c.table.MarkIssued(idx)
	c.stats.Of(entry.Kind).Issued++

	return true
}

func (c *Comp) boundInterconnect(kind mem.AccessKind) Interconnect {
	ic := c.dataInterconnect
	if kind == mem.AccessKindInstruction {
		ic = c.instructionInterconnect
	}

	if ic == nil {
		log.Panicf("%s has no interconnect for %s accesses", c.Name(), kind)
	}

	return ic
}

// HandleInterconnectCallback records that the cache has completed the
// transaction of the access. The access and the accesses waiting on it are
// released in the next cycle. It panics if the access is not an outstanding
// transaction of this controller, including a head that has not been
// forwarded yet.
func (c *Comp) HandleInterconnectCallback(req *mem.AccessReq) bool {
	err := c.table.Complete(req.ID)
	if err != nil {
		log.Panicf("%s cannot complete %s: %v", c.Name(), req.ID, err)
	}

	c.stats.Of(req.Kind).Completed++
	c.TickLater()

	return true
}

// Annul prevents the completion of the access from being delivered. The
// access still occupies its entry until its line arrives. Annulling an access
// that is not tracked or already annulled does nothing.
func (c *Comp) Annul(req *mem.AccessReq) {
	idx, changed := c.table.Annul(req.ID)
	if !changed {
		return
	}

	c.stats.Of(c.table.Entry(idx).Kind).Annulled++
	c.traceAnnulled(req)
}

// FlushBuffer forgets all the lines in the instruction buffer.
func (c *Comp) FlushBuffer() {
	c.buffer.Reset()
}

// Stats returns a snapshot of the counters.
func (c *Comp) Stats() mem.Stats {
	return c.stats
}

// Tick advances the controller by one cycle.
func (c *Comp) Tick() bool {
	return c.Progress(c.Freq.Cycle(c.Now()))
}

// Progress advances the controller to the given cycle. It forwards the
// transactions the interconnects could not accept earlier, counts down the
// entries, and releases the accesses whose lines have arrived. It returns
// true if there is still work in flight.
func (c *Comp) Progress(cycle uint64) bool {
	c.lastCycle = cycle

	madeProgress := false
	madeProgress = c.retryForward() || madeProgress
	madeProgress = c.countDown() || madeProgress
	madeProgress = c.finalizeCompleted() || madeProgress

	return madeProgress || c.table.Len() > 0
}

func (c *Comp) retryForward() bool {
	madeProgress := false

	for _, idx := range c.table.Unissued() {
		madeProgress = c.forward(idx) || madeProgress
	}

	return madeProgress
}

func (c *Comp) countDown() bool {
	overdue := c.table.Age()

	for _, idx := range overdue {
		c.stats.Of(c.table.Entry(idx).Kind).Overdue++
	}

	return len(overdue) > 0
}

func (c *Comp) finalizeCompleted() bool {
	heads := c.table.CompletedHeads()

	for _, idx := range heads {
		c.finalize(idx)
	}

	return len(heads) > 0
}

func (c *Comp) finalize(head int) {
	indices := c.chainOf(head)

	chain := make([]reqtable.Entry, len(indices))
	for i, idx := range indices {
		chain[i] = c.table.Entry(idx)
		c.routes[idx] = nil
	}

	delivered := make([]*mem.AccessReq, 0, len(chain))
	c.table.Finalize(head, func(e reqtable.Entry) {
		delivered = append(delivered, e.Req)
	})

	if chain[0].Kind == mem.AccessKindInstruction {
		c.buffer.Insert(chain[0].Line)
	}

	for _, e := range chain {
		c.traceReqEnd(e.Req)
	}

	for _, req := range delivered {
		c.stats.Of(req.Kind).Delivered++

		if c.core != nil {
			c.core.Wakeup(req)
		}
	}
}

func (c *Comp) chainOf(head int) []int {
	indices := make([]int, 0)

	for idx := head; idx != reqtable.None; idx = c.table.Entry(idx).Next {
		indices = append(indices, idx)
	}

	return indices
}
