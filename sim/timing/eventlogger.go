package timing

import (
	"log"
	"reflect"

	"github.com/sarchlab/cpuctrl/sim/hooking"
	"github.com/sarchlab/cpuctrl/sim/naming"
)

// EventLogger is a hook that prints every event before it is handled.
type EventLogger struct {
	logger *log.Logger
}

// NewEventLogger returns a new EventLogger which will write into the logger.
func NewEventLogger(logger *log.Logger) *EventLogger {
	h := new(EventLogger)

	h.logger = logger

	return h
}

// Func writes the event information into the logger
func (h *EventLogger) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	handler := "?"
	if n, ok := evt.Handler().(naming.Named); ok {
		handler = n.Name()
	}

	h.logger.Printf("%.10f, %s -> %s", evt.Time(), reflect.TypeOf(evt), handler)
}
