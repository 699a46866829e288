package cpuctrl

import (
	"github.com/sarchlab/cpuctrl/mem/cpuctrl/internal/linebuf"
	"github.com/sarchlab/cpuctrl/mem/cpuctrl/internal/reqtable"
	"github.com/sarchlab/cpuctrl/mem/mem"
	"github.com/sarchlab/cpuctrl/sim/modeling"
	"github.com/sarchlab/cpuctrl/sim/timing"
)

// A Builder can build CPU controllers.
type Builder struct {
	engine timing.Engine
	freq   timing.Freq

	tableSize           int
	bufferSize          int
	instructionLineBits uint
	dataLineBits        uint
	instructionLatency  int
	dataLatency         int

	instructionInterconnect Interconnect
	dataInterconnect        Interconnect
	core                    Core
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:                1 * timing.GHz,
		tableSize:           16,
		bufferSize:          4,
		instructionLineBits: 6,
		dataLineBits:        6,
		instructionLatency:  1,
		dataLatency:         3,
	}
}

// WithEngine sets the engine that the controller uses.
func (b Builder) WithEngine(engine timing.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the controller.
func (b Builder) WithFreq(freq timing.Freq) Builder {
	b.freq = freq
	return b
}

// WithTableSize sets the number of accesses that can be in flight.
func (b Builder) WithTableSize(n int) Builder {
	b.tableSize = n
	return b
}

// WithBufferSize sets the number of instruction lines kept for fast-path
// hits.
func (b Builder) WithBufferSize(n int) Builder {
	b.bufferSize = n
	return b
}

// WithInstructionLineBits sets log2 of the line size of the instruction
// cache.
func (b Builder) WithInstructionLineBits(bits uint) Builder {
	b.instructionLineBits = bits
	return b
}

// WithDataLineBits sets log2 of the line size of the data cache.
func (b Builder) WithDataLineBits(bits uint) Builder {
	b.dataLineBits = bits
	return b
}

// WithInstructionLatency sets the number of cycles an instruction fetch is
// expected to take. Fetches taking longer are counted as overdue.
func (b Builder) WithInstructionLatency(cycles int) Builder {
	b.instructionLatency = cycles
	return b
}

// WithDataLatency sets the number of cycles a data access is expected to
// take. Accesses taking longer are counted as overdue.
func (b Builder) WithDataLatency(cycles int) Builder {
	b.dataLatency = cycles
	return b
}

// WithInstructionInterconnect sets the interconnect to the instruction cache.
func (b Builder) WithInstructionInterconnect(ic Interconnect) Builder {
	b.instructionInterconnect = ic
	return b
}

// WithDataInterconnect sets the interconnect to the data cache.
func (b Builder) WithDataInterconnect(ic Interconnect) Builder {
	b.dataInterconnect = ic
	return b
}

// WithCore sets the core to wake up when accesses complete.
func (b Builder) WithCore(core Core) Builder {
	b.core = core
	return b
}

// Build creates a new CPU controller.
func (b Builder) Build(name string) *Comp {
	b.mustBeValid()

	c := new(Comp)
	c.TickingComponent = modeling.NewTickingComponent(
		name, b.engine, b.freq, c)

	c.geometry = mem.LineGeometry{
		InstructionLineBits: b.instructionLineBits,
		DataLineBits:        b.dataLineBits,
	}
	c.table = reqtable.NewTable(b.tableSize)
	c.buffer = linebuf.New(b.bufferSize)
	c.routes = make([]Interconnect, b.tableSize)
	c.latency[mem.AccessKindInstruction] = b.instructionLatency
	c.latency[mem.AccessKindData] = b.dataLatency
	c.instructionInterconnect = b.instructionInterconnect
	c.dataInterconnect = b.dataInterconnect
	c.core = b.core

	return c
}

func (b Builder) mustBeValid() {
	if b.engine == nil {
		panic("engine is not set")
	}

	if b.tableSize <= 0 {
		panic("table size must be positive")
	}

	if b.bufferSize <= 0 {
		panic("buffer size must be positive")
	}

	if b.instructionLineBits >= 64 || b.dataLineBits >= 64 {
		panic("line bits must be less than 64")
	}
}
