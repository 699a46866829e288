// Package mem defines the memory access descriptor and the contracts shared
// by the controllers of a memory hierarchy.
package mem

import (
	"fmt"

	"github.com/sarchlab/cpuctrl/sim/id"
)

// AccessKind tells whether an access fetches instructions or touches data.
type AccessKind int

// Kinds of accesses.
const (
	AccessKindData AccessKind = iota
	AccessKindInstruction
)

// NumAccessKinds is the number of AccessKind values.
const NumAccessKinds = 2

func (k AccessKind) String() string {
	switch k {
	case AccessKindData:
		return "data"
	case AccessKindInstruction:
		return "instruction"
	default:
		return fmt.Sprintf("AccessKind(%d)", int(k))
	}
}

// An AccessReq describes one memory access issued by a core. It is owned by
// the issuer; controllers only keep references to it while it is in flight.
type AccessReq struct {
	ID       string
	Address  uint64
	ByteSize uint64
	Kind     AccessKind
	IsWrite  bool
	CoreID   int
	ThreadID int
	Info     interface{}
}

// IsInstruction returns true if the access is an instruction fetch.
func (r *AccessReq) IsInstruction() bool {
	return r.Kind == AccessKindInstruction
}

func (r *AccessReq) String() string {
	op := "read"
	if r.IsWrite {
		op = "write"
	}

	return fmt.Sprintf("%s core[%d] thread[%d] %s %s@0x%x/%d",
		r.ID, r.CoreID, r.ThreadID, r.Kind, op, r.Address, r.ByteSize)
}

// AccessReqBuilder can build access requests.
type AccessReqBuilder struct {
	address, byteSize uint64
	kind              AccessKind
	isWrite           bool
	coreID, threadID  int
	info              interface{}
}

// WithAddress sets the physical address of the request to build.
func (b AccessReqBuilder) WithAddress(address uint64) AccessReqBuilder {
	b.address = address
	return b
}

// WithByteSize sets the number of bytes the request accesses.
func (b AccessReqBuilder) WithByteSize(byteSize uint64) AccessReqBuilder {
	b.byteSize = byteSize
	return b
}

// WithKind sets the kind of the request to build.
func (b AccessReqBuilder) WithKind(kind AccessKind) AccessReqBuilder {
	b.kind = kind
	return b
}

// AsInstructionFetch makes the request an instruction fetch.
func (b AccessReqBuilder) AsInstructionFetch() AccessReqBuilder {
	b.kind = AccessKindInstruction
	return b
}

// AsWrite makes the request a data write.
func (b AccessReqBuilder) AsWrite() AccessReqBuilder {
	b.isWrite = true
	return b
}

// WithCoreID sets the core that issues the request.
func (b AccessReqBuilder) WithCoreID(coreID int) AccessReqBuilder {
	b.coreID = coreID
	return b
}

// WithThreadID sets the hardware thread that issues the request.
func (b AccessReqBuilder) WithThreadID(threadID int) AccessReqBuilder {
	b.threadID = threadID
	return b
}

// WithInfo attaches issuer-defined information to the request.
func (b AccessReqBuilder) WithInfo(info interface{}) AccessReqBuilder {
	b.info = info
	return b
}

// Build creates a new AccessReq with a fresh ID.
func (b AccessReqBuilder) Build() *AccessReq {
	return &AccessReq{
		ID:       id.Generate(),
		Address:  b.address,
		ByteSize: b.byteSize,
		Kind:     b.kind,
		IsWrite:  b.isWrite,
		CoreID:   b.coreID,
		ThreadID: b.threadID,
		Info:     b.info,
	}
}
