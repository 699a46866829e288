package idealcache

import (
	"github.com/sarchlab/cpuctrl/sim/modeling"
	"github.com/sarchlab/cpuctrl/sim/timing"
)

// A Builder can build ideal caches.
type Builder struct {
	engine    timing.Engine
	freq      timing.Freq
	latency   int
	width     int
	responder Responder
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:    1 * timing.GHz,
		latency: 4,
		width:   1,
	}
}

// WithEngine sets the engine the cache uses.
func (b Builder) WithEngine(engine timing.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the cache.
func (b Builder) WithFreq(freq timing.Freq) Builder {
	b.freq = freq
	return b
}

// WithLatency sets the number of cycles before a transaction completes.
func (b Builder) WithLatency(cycles int) Builder {
	b.latency = cycles
	return b
}

// WithWidth sets the number of transactions accepted per cycle.
func (b Builder) WithWidth(width int) Builder {
	b.width = width
	return b
}

// WithResponder sets who is notified when transactions complete.
func (b Builder) WithResponder(r Responder) Builder {
	b.responder = r
	return b
}

// Build creates a new ideal cache.
func (b Builder) Build(name string) *Comp {
	if b.engine == nil {
		panic("engine is not set")
	}

	if b.width <= 0 {
		panic("width must be positive")
	}

	if b.latency < 0 {
		panic("latency must not be negative")
	}

	c := &Comp{
		ComponentBase: modeling.NewComponentBase(name),
		Engine:        b.engine,
		Freq:          b.freq,
		Latency:       b.latency,
		Width:         b.width,
		responder:     b.responder,
		countedCycle:  -1,
	}

	return c
}
