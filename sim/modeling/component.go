// Package modeling provides the building blocks of simulated components.
package modeling

import (
	"github.com/sarchlab/cpuctrl/sim/hooking"
	"github.com/sarchlab/cpuctrl/sim/naming"
	"github.com/sarchlab/cpuctrl/sim/timing"
)

// A Component is a element that is being simulated.
type Component interface {
	naming.Named
	timing.Handler
	hooking.Hookable
}

// ComponentBase provides some functions that other component can use.
type ComponentBase struct {
	naming.NamedBase
	hooking.HookableBase
}

// NewComponentBase creates a new ComponentBase
func NewComponentBase(name string) *ComponentBase {
	c := new(ComponentBase)
	c.NamedBase = naming.MakeNamedBase(name)

	return c
}

// TickingComponent is a type of component that update states from cycle to
// cycle. A programmer would only need to program a tick function for a ticking
// component.
type TickingComponent struct {
	*ComponentBase
	*timing.TickScheduler

	ticker timing.Ticker
}

// Handle triggers the tick function of the TickingComponent
func (c *TickingComponent) Handle(_ timing.Event) error {
	madeProgress := c.ticker.Tick()
	if madeProgress {
		c.TickLater()
	}

	return nil
}

// NewTickingComponent creates a new ticking component
func NewTickingComponent(
	name string,
	engine timing.Engine,
	freq timing.Freq,
	ticker timing.Ticker,
) *TickingComponent {
	tc := new(TickingComponent)
	tc.TickScheduler = timing.NewTickScheduler(tc, engine, freq)
	tc.ComponentBase = NewComponentBase(name)
	tc.ticker = ticker

	return tc
}

// NewSecondaryTickingComponent creates a ticking component whose ticks run
// after all the primary events of the same time.
func NewSecondaryTickingComponent(
	name string,
	engine timing.Engine,
	freq timing.Freq,
	ticker timing.Ticker,
) *TickingComponent {
	tc := new(TickingComponent)
	tc.TickScheduler = timing.NewSecondaryTickScheduler(tc, engine, freq)
	tc.ComponentBase = NewComponentBase(name)
	tc.ticker = ticker

	return tc
}
