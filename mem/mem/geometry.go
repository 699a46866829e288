package mem

// LineGeometry maps addresses to cache lines. The instruction and data paths
// can use different line sizes.
//
// The bit counts must match the line sizes of the caches behind the
// instruction and data interconnects. Nothing checks this at run time; a
// mismatch shows up as wrong coalescing.
type LineGeometry struct {
	InstructionLineBits uint
	DataLineBits        uint
}

// LineAddress returns the cache line identifier of the request.
func (g LineGeometry) LineAddress(req *AccessReq) uint64 {
	if req.IsInstruction() {
		return req.Address >> g.InstructionLineBits
	}

	return req.Address >> g.DataLineBits
}

// LineSize returns the number of bytes in a line of the given kind.
func (g LineGeometry) LineSize(kind AccessKind) uint64 {
	if kind == AccessKindInstruction {
		return 1 << g.InstructionLineBits
	}

	return 1 << g.DataLineBits
}
