package cpuctrl

import (
	"github.com/sarchlab/cpuctrl/mem/mem"
	"github.com/sarchlab/cpuctrl/sim/naming"
)

// An Interconnect carries transactions from the controller to an L1 cache.
// Responses come back through the controller's HandleInterconnectCallback.
type Interconnect interface {
	naming.Named

	// CanSend tells whether a transaction would be accepted now.
	CanSend() bool

	// Send forwards the transaction. It returns false if the interconnect
	// cannot accept it.
	Send(req *mem.AccessReq) bool
}

// A Core is woken up when one of its accesses is completed.
type Core interface {
	Wakeup(req *mem.AccessReq)
}
