package reqtable

import (
	"fmt"

	"github.com/sarchlab/cpuctrl/mem/mem"
)

// None marks the absence of a link between entries.
const None = -1

// An Entry tracks one access while it is in flight.
type Entry struct {
	Req       *mem.AccessReq
	Cycles    int
	DependsOn int
	Next      int
	Annulled  bool
	Issued    bool
	Completed bool
	Line      uint64
	Kind      mem.AccessKind

	admitted uint64
}

func (e *Entry) reset() {
	*e = Entry{
		Cycles:    -1,
		DependsOn: None,
		Next:      None,
	}
}

// IsFree returns true if the entry is not bound to any access.
func (e Entry) IsFree() bool {
	return e.Req == nil
}

// IsHead returns true if the entry owns the outstanding transaction of its
// line.
func (e Entry) IsHead() bool {
	return e.Req != nil && e.DependsOn == None
}

func (e Entry) String() string {
	if e.IsFree() {
		return "Free Request Entry"
	}

	s := fmt.Sprintf("Request{%s} cycles[%d] depends[%d]",
		e.Req, e.Cycles, e.DependsOn)

	if e.Issued {
		s += " issued"
	}

	if e.Completed {
		s += " completed"
	}

	if e.Annulled {
		s += " annulled"
	}

	return s
}
