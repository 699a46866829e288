package mem

import (
	"io"

	"github.com/sarchlab/cpuctrl/sim/hooking"
	"github.com/sarchlab/cpuctrl/sim/naming"
)

// A Controller is a component of the memory hierarchy that tracks accesses on
// behalf of its requesters.
type Controller interface {
	naming.Named
	hooking.Hookable

	// IsFull tells whether a new access would be refused now.
	IsFull() bool

	// Annul stops the completion of the access from being delivered. It is a
	// no-op if the access is not tracked.
	Annul(req *AccessReq)

	// Stats returns a snapshot of the controller's counters.
	Stats() Stats

	// Print writes the controller's live state.
	Print(w io.Writer)

	// PrintMap writes how the controller is connected.
	PrintMap(w io.Writer)
}
