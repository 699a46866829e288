package cpuctrl

import (
	"fmt"
	"io"

	"github.com/sarchlab/cpuctrl/mem/cpuctrl/internal/linebuf"
)

// Print writes the accesses in flight and the buffered instruction lines.
func (c *Comp) Print(w io.Writer) {
	fmt.Fprintf(w, "CPU-Controller: %s\n", c.Name())
	fmt.Fprintf(w, "\tcycle: %d\n", c.lastCycle)
	fmt.Fprintf(w, "\tpending requests: %d/%d\n",
		c.table.Len(), c.table.Capacity())

	for i, e := range c.table.Entries() {
		if e.IsFree() {
			continue
		}

		fmt.Fprintf(w, "\t\t[%d] %s\n", i, e)
	}

	fmt.Fprintf(w, "\tinstruction buffer:\n")

	for _, e := range c.buffer.Entries() {
		if e.LineAddress == linebuf.Unused {
			continue
		}

		fmt.Fprintf(w, "\t\t[%d] lineAddress[0x%x]\n", e.Index, e.LineAddress)
	}
}

// PrintMap writes the interconnects the controller is connected to.
func (c *Comp) PrintMap(w io.Writer) {
	fmt.Fprintf(w, "CPU-Controller: %s\n", c.Name())
	fmt.Fprintf(w, "\tconnected to:\n")
	fmt.Fprintf(w, "\t\tL1-i: %s\n", interconnectName(c.instructionInterconnect))
	fmt.Fprintf(w, "\t\tL1-d: %s\n", interconnectName(c.dataInterconnect))
}

func interconnectName(ic Interconnect) string {
	if ic == nil {
		return "<none>"
	}

	return ic.Name()
}
