package main

import (
	"log"
	"math/rand"

	"github.com/sarchlab/cpuctrl/mem/cpuctrl"
	"github.com/sarchlab/cpuctrl/mem/mem"
	"github.com/sarchlab/cpuctrl/monitoring"
	"github.com/sarchlab/cpuctrl/sim/modeling"
	"github.com/sarchlab/cpuctrl/sim/timing"
)

// A workload describes the synthetic access stream of a core.
type workload struct {
	Accesses         uint64
	InstructionRatio float64
	AnnulRatio       float64
	Footprint        uint64
	Seed             int64
}

// A syntheticCore issues one access per cycle to the controller. It stalls
// when the controller rejects an access and retries it in the next cycle.
type syntheticCore struct {
	*modeling.TickingComponent

	ctrl     *cpuctrl.Comp
	workload workload
	rand     *rand.Rand
	progress *monitoring.ProgressBar

	stalled     *mem.AccessReq
	issued      uint64
	outstanding map[string]*mem.AccessReq

	Finished uint64
	Annulled uint64
	Stalls   uint64
}

func newSyntheticCore(
	name string,
	engine timing.Engine,
	freq timing.Freq,
	ctrl *cpuctrl.Comp,
	w workload,
) *syntheticCore {
	c := &syntheticCore{
		ctrl:        ctrl,
		workload:    w,
		rand:        rand.New(rand.NewSource(w.Seed)),
		outstanding: make(map[string]*mem.AccessReq),
	}
	c.TickingComponent = modeling.NewSecondaryTickingComponent(
		name, engine, freq, c)

	return c
}

func (c *syntheticCore) Tick() bool {
	if c.stalled == nil && c.issued >= c.workload.Accesses {
		return false
	}

	req := c.stalled
	if req == nil {
		req = c.nextAccess()
	}

	status := c.ctrl.Access(req)
	if status == cpuctrl.AccessRejected {
		c.stalled = req
		c.Stalls++

		return true
	}

	c.stalled = nil
	c.issued++

	if c.progress != nil {
		c.progress.IncrementInProgress(1)
	}

	if status == cpuctrl.AccessBufferHit {
		c.finish()
		return true
	}

	c.outstanding[req.ID] = req
	c.maybeAnnul(req)

	return true
}

func (c *syntheticCore) nextAccess() *mem.AccessReq {
	b := mem.AccessReqBuilder{}.
		WithAddress(uint64(c.rand.Int63n(int64(c.workload.Footprint)))).
		WithByteSize(4)

	if c.rand.Float64() < c.workload.InstructionRatio {
		b = b.AsInstructionFetch()
	} else {
		b = b.WithByteSize(8)
		if c.rand.Intn(4) == 0 {
			b = b.AsWrite()
		}
	}

	return b.Build()
}

func (c *syntheticCore) maybeAnnul(req *mem.AccessReq) {
	if c.rand.Float64() >= c.workload.AnnulRatio {
		return
	}

	c.ctrl.Annul(req)
	delete(c.outstanding, req.ID)
	c.Annulled++
	c.finish()
}

// Wakeup is called by the controller when an access completes.
func (c *syntheticCore) Wakeup(req *mem.AccessReq) {
	if _, found := c.outstanding[req.ID]; !found {
		log.Panicf("%s woken up by unknown access %s", c.Name(), req.ID)
	}

	delete(c.outstanding, req.ID)
	c.finish()
}

func (c *syntheticCore) finish() {
	c.Finished++

	if c.progress != nil {
		c.progress.MoveInProgressToFinished(1)
	}
}

// Done returns true if every access has been issued and none is waiting.
func (c *syntheticCore) Done() bool {
	return c.issued == c.workload.Accesses &&
		c.stalled == nil &&
		len(c.outstanding) == 0
}
