// Package idealcache provides an L1 cache stand-in that completes every
// transaction after a fixed number of cycles.
package idealcache

import (
	"log"
	"reflect"

	"github.com/sarchlab/cpuctrl/mem/mem"
	"github.com/sarchlab/cpuctrl/sim/modeling"
	"github.com/sarchlab/cpuctrl/sim/timing"
	"github.com/sarchlab/cpuctrl/tracing"
)

// A Responder is notified when a transaction completes.
type Responder interface {
	HandleInterconnectCallback(req *mem.AccessReq) bool
}

type respondEvent struct {
	*timing.EventBase
	req *mem.AccessReq
}

func newRespondEvent(
	time timing.VTimeInSec,
	handler timing.Handler,
	req *mem.AccessReq,
) *respondEvent {
	return &respondEvent{timing.NewEventBase(time, handler), req}
}

// A Comp is an ideal cache. It accepts up to Width transactions per cycle and
// completes each of them Latency cycles later. It never misses.
type Comp struct {
	*modeling.ComponentBase

	Engine  timing.Engine
	Freq    timing.Freq
	Latency int
	Width   int

	responder    Responder
	countedCycle int64
	sentInCycle  int
	inFlight     int
}

// RegisterResponder sets who is notified when transactions complete.
func (c *Comp) RegisterResponder(r Responder) {
	c.responder = r
}

// InFlight returns the number of transactions that have not completed.
func (c *Comp) InFlight() int {
	return c.inFlight
}

// CanSend returns true if the cache can accept another transaction in the
// current cycle.
func (c *Comp) CanSend() bool {
	c.updateCycle()
	return c.sentInCycle < c.Width
}

// Send accepts a transaction.
func (c *Comp) Send(req *mem.AccessReq) bool {
	if !c.CanSend() {
		return false
	}

	c.sentInCycle++
	c.inFlight++

	now := c.Engine.Now()
	tracing.StartTask(req.ID+"@"+c.Name(), req.ID, c, "req_in",
		req.Kind.String(), req)

	timeToSchedule := c.Freq.NCyclesLater(c.Latency, now)
	c.Engine.Schedule(newRespondEvent(timeToSchedule, c, req))

	return true
}

func (c *Comp) updateCycle() {
	cycle := int64(c.Freq.Cycle(c.Engine.Now()))
	if cycle != c.countedCycle {
		c.countedCycle = cycle
		c.sentInCycle = 0
	}
}

// Handle defines how the Comp handles events.
func (c *Comp) Handle(e timing.Event) error {
	switch e := e.(type) {
	case *respondEvent:
		return c.handleRespondEvent(e)
	default:
		log.Panicf("cannot handle event of %s", reflect.TypeOf(e))
	}

	return nil
}

func (c *Comp) handleRespondEvent(e *respondEvent) error {
	if c.responder == nil {
		log.Panicf("%s has no responder", c.Name())
	}

	c.inFlight--
	tracing.EndTask(e.req.ID+"@"+c.Name(), c)
	c.responder.HandleInterconnectCallback(e.req)

	return nil
}
