package cpuctrl

import (
	"github.com/sarchlab/cpuctrl/mem/mem"
	"github.com/sarchlab/cpuctrl/tracing"
)

func (c *Comp) traceReqStart(req *mem.AccessReq) {
	tracing.StartTask(req.ID, "", c, "req_in", req.Kind.String(), req)
}

func (c *Comp) traceReqEnd(req *mem.AccessReq) {
	tracing.EndTask(req.ID, c)
}

func (c *Comp) traceBufferHit(req *mem.AccessReq) {
	c.traceReqStart(req)
	tracing.AddTaskStep(req.ID, c, "buffer_hit")
	c.traceReqEnd(req)
}

func (c *Comp) traceCoalesced(req *mem.AccessReq) {
	tracing.AddTaskStep(req.ID, c, "coalesced")
}

func (c *Comp) traceAnnulled(req *mem.AccessReq) {
	tracing.AddTaskStep(req.ID, c, "annulled")
}
