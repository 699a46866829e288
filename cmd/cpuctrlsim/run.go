package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sarchlab/cpuctrl/datarecording"
	"github.com/sarchlab/cpuctrl/mem/cpuctrl"
	"github.com/sarchlab/cpuctrl/mem/hierarchy"
	"github.com/sarchlab/cpuctrl/mem/idealcache"
	"github.com/sarchlab/cpuctrl/mem/mem"
	"github.com/sarchlab/cpuctrl/mem/trace"
	"github.com/sarchlab/cpuctrl/monitoring"
	"github.com/sarchlab/cpuctrl/sim/id"
	"github.com/sarchlab/cpuctrl/sim/timing"
	"github.com/sarchlab/cpuctrl/tracing"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a synthetic access stream through a CPU controller.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := configFromFlags(cmd)
		if err != nil {
			return err
		}

		useIDGenerator(c.ParallelIDs)

		return runSimulation(c, cmd.OutOrStdout())
	},
}

func init() {
	c, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v, using built-in defaults\n", err)
		c = defaultConfig()
	}

	f := runCmd.Flags()
	f.Int("table-size", c.TableSize, "Number of accesses the controller can track")
	f.Int("buffer-size", c.BufferSize, "Number of instruction lines kept for fast-path hits")
	f.Uint("icache-line-bits", c.ICacheLineBits, "Log2 of the instruction cache line size")
	f.Uint("dcache-line-bits", c.DCacheLineBits, "Log2 of the data cache line size")
	f.Int("latency", c.Latency, "Cycles the L1 caches take to complete a transaction")
	f.Int("width", c.Width, "Transactions each L1 cache accepts per cycle")
	f.Uint64("accesses", c.Accesses, "Number of accesses the core issues")
	f.Float64("instruction-ratio", c.InstructionRatio, "Fraction of accesses that are instruction fetches")
	f.Float64("annul-ratio", c.AnnulRatio, "Fraction of queued accesses the core annuls")
	f.Uint64("footprint", c.Footprint, "Size of the address range accessed, in bytes")
	f.Int64("seed", c.Seed, "Seed of the access stream")
	f.String("trace-file", c.TraceFile, "Write a text trace of every access to this file")
	f.String("event-log", c.EventLog, "Write every simulation event to this file")
	f.String("record", c.Record, "Record traces and statistics into this SQLite database")
	f.Bool("monitor", c.Monitor, "Serve the simulation state over HTTP")
	f.Int("monitor-port", c.MonitorPort, "Port of the monitoring server")
	f.Bool("open-browser", c.OpenBrowser, "Open the monitoring server in a browser")
	f.Bool("parallel-ids", c.ParallelIDs, "Generate globally unique request IDs instead of sequential ones")

	rootCmd.AddCommand(runCmd)
}

func configFromFlags(cmd *cobra.Command) (config, error) {
	f := cmd.Flags()
	c := config{}

	c.TableSize, _ = f.GetInt("table-size")
	c.BufferSize, _ = f.GetInt("buffer-size")
	c.ICacheLineBits, _ = f.GetUint("icache-line-bits")
	c.DCacheLineBits, _ = f.GetUint("dcache-line-bits")
	c.Latency, _ = f.GetInt("latency")
	c.Width, _ = f.GetInt("width")
	c.Accesses, _ = f.GetUint64("accesses")
	c.InstructionRatio, _ = f.GetFloat64("instruction-ratio")
	c.AnnulRatio, _ = f.GetFloat64("annul-ratio")
	c.Footprint, _ = f.GetUint64("footprint")
	c.Seed, _ = f.GetInt64("seed")
	c.TraceFile, _ = f.GetString("trace-file")
	c.EventLog, _ = f.GetString("event-log")
	c.Record, _ = f.GetString("record")
	c.Monitor, _ = f.GetBool("monitor")
	c.MonitorPort, _ = f.GetInt("monitor-port")
	c.OpenBrowser, _ = f.GetBool("open-browser")
	c.ParallelIDs, _ = f.GetBool("parallel-ids")

	return c, c.validate()
}

// useIDGenerator picks the process-wide request ID generator. It must run
// before the first request is built.
func useIDGenerator(parallel bool) {
	if parallel {
		id.UseParallelIDGenerator()
		return
	}

	id.UseSequentialIDGenerator()
}

type simulation struct {
	engine    *timing.SerialEngine
	ctrl      *cpuctrl.Comp
	icache    *idealcache.Comp
	dcache    *idealcache.Comp
	core      *syntheticCore
	hierarchy *hierarchy.Hierarchy
	latency   *tracing.AverageTimeTracer
}

func buildSimulation(c config) *simulation {
	freq := 1 * timing.GHz
	s := &simulation{
		engine:    timing.NewSerialEngine(),
		hierarchy: hierarchy.New(),
	}

	s.ctrl = cpuctrl.MakeBuilder().
		WithEngine(s.engine).
		WithFreq(freq).
		WithTableSize(c.TableSize).
		WithBufferSize(c.BufferSize).
		WithInstructionLineBits(c.ICacheLineBits).
		WithDataLineBits(c.DCacheLineBits).
		WithInstructionLatency(c.Latency).
		WithDataLatency(c.Latency).
		Build("Ctrl")

	cacheBuilder := idealcache.MakeBuilder().
		WithEngine(s.engine).
		WithFreq(freq).
		WithLatency(c.Latency).
		WithWidth(c.Width).
		WithResponder(s.ctrl)
	s.icache = cacheBuilder.Build("L1I")
	s.dcache = cacheBuilder.Build("L1D")

	s.ctrl.RegisterInstructionInterconnect(s.icache)
	s.ctrl.RegisterDataInterconnect(s.dcache)

	s.core = newSyntheticCore("Core", s.engine, freq, s.ctrl, workload{
		Accesses:         c.Accesses,
		InstructionRatio: c.InstructionRatio,
		AnnulRatio:       c.AnnulRatio,
		Footprint:        c.Footprint,
		Seed:             c.Seed,
	})
	s.ctrl.RegisterCore(s.core)

	s.hierarchy.Register(s.ctrl)

	s.latency = tracing.NewAverageTimeTracer(s.engine, nil)
	tracing.CollectTrace(s.ctrl, s.latency)

	return s
}

func runSimulation(c config, out io.Writer) error {
	s := buildSimulation(c)

	closeTracers, err := attachTracers(s, c)
	if err != nil {
		return err
	}

	if c.Monitor {
		startMonitor(s, c)
	}

	s.core.TickNow()

	err = s.engine.Run()
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	if !s.core.Done() {
		return fmt.Errorf("simulation ended with %d accesses in flight",
			len(s.core.outstanding))
	}

	report(s, out)
	closeTracers()

	return nil
}

func attachTracers(s *simulation, c config) (func(), error) {
	closers := make([]func(), 0)

	if c.TraceFile != "" {
		f, err := os.Create(c.TraceFile)
		if err != nil {
			return nil, fmt.Errorf("creating trace file: %w", err)
		}

		tracing.CollectTrace(s.ctrl,
			trace.NewTracer(log.New(f, "", 0), s.engine))
		closers = append(closers, func() { f.Close() })
	}

	if c.EventLog != "" {
		f, err := os.Create(c.EventLog)
		if err != nil {
			return nil, fmt.Errorf("creating event log: %w", err)
		}

		s.engine.AcceptHook(timing.NewEventLogger(log.New(f, "", 0)))
		closers = append(closers, func() { f.Close() })
	}

	if c.Record != "" {
		recorder := datarecording.New(c.Record)
		tracing.CollectTrace(s.ctrl, trace.NewDBTracer(recorder, s.engine))

		closers = append(closers, func() {
			s.hierarchy.RecordStats(recorder)
			recorder.Close()
		})
	}

	return func() {
		for _, closeFn := range closers {
			closeFn()
		}
	}, nil
}

func startMonitor(s *simulation, c config) {
	m := monitoring.NewMonitor()
	if c.MonitorPort != 0 {
		m.WithPortNumber(c.MonitorPort)
	}

	m.RegisterEngine(s.engine)
	m.RegisterComponent(s.ctrl)
	m.RegisterComponent(s.icache)
	m.RegisterComponent(s.dcache)
	m.RegisterComponent(s.core)

	s.core.progress = m.CreateProgressBar("Accesses", c.Accesses)

	port := m.StartServer()

	if c.OpenBrowser {
		url := fmt.Sprintf("http://localhost:%d/api/dump/%s", port, s.ctrl.Name())

		err := browser.OpenURL(url)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open browser: %v\n", err)
		}
	}
}

func report(s *simulation, out io.Writer) {
	s.hierarchy.PrintMap(out)
	s.hierarchy.Print(out)

	fmt.Fprintf(out, "simulated time: %.9f s\n", s.engine.Now())
	fmt.Fprintf(out, "core: finished %d, annulled %d, stalls %d\n",
		s.core.Finished, s.core.Annulled, s.core.Stalls)
	fmt.Fprintf(out, "average access latency: %.3f ns over %d accesses\n",
		s.latency.AverageTime()*1e9, s.latency.TotalCount())

	printStats(out, s.hierarchy.TotalStats())
}

func printStats(out io.Writer, stats mem.Stats) {
	fmt.Fprintf(out, "%-12s %10s %10s %10s %10s %10s %10s %10s %10s %10s\n",
		"kind", "accesses", "hits", "coalesced", "issued", "completed",
		"delivered", "annulled", "rejected", "overdue")

	for k := range stats.Kinds {
		kind := mem.AccessKind(k)
		printKindStats(out, kind.String(), stats.Kind(kind))
	}

	printKindStats(out, "total", stats.Total())
}

func printKindStats(out io.Writer, name string, s mem.KindStats) {
	fmt.Fprintf(out, "%-12s %10d %10d %10d %10d %10d %10d %10d %10d %10d\n",
		name, s.Accesses, s.BufferHits, s.Coalesced, s.Issued, s.Completed,
		s.Delivered, s.Annulled, s.Rejected, s.Overdue)
}
