package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const envPrefix = "CPUCTRL_"

type config struct {
	TableSize        int
	BufferSize       int
	ICacheLineBits   uint
	DCacheLineBits   uint
	Latency          int
	Width            int
	Accesses         uint64
	InstructionRatio float64
	AnnulRatio       float64
	Footprint        uint64
	Seed             int64
	TraceFile        string
	EventLog         string
	Record           string
	Monitor          bool
	MonitorPort      int
	OpenBrowser      bool
	ParallelIDs      bool
}

func defaultConfig() config {
	return config{
		TableSize:        16,
		BufferSize:       4,
		ICacheLineBits:   6,
		DCacheLineBits:   6,
		Latency:          4,
		Width:            1,
		Accesses:         10000,
		InstructionRatio: 0.5,
		AnnulRatio:       0.01,
		Footprint:        64 * 1024,
		Seed:             1,
	}
}

// loadConfig returns the defaults overridden by the environment. Variables in
// a .env file in the working directory are loaded first; variables already
// set in the environment take precedence.
func loadConfig() (config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return config{}, fmt.Errorf("loading .env: %w", err)
	}

	return configFromEnv(defaultConfig())
}

func configFromEnv(c config) (config, error) {
	var err error

	ints := []struct {
		name string
		dst  *int
	}{
		{"TABLE_SIZE", &c.TableSize},
		{"BUFFER_SIZE", &c.BufferSize},
		{"LATENCY", &c.Latency},
		{"WIDTH", &c.Width},
		{"MONITOR_PORT", &c.MonitorPort},
	}
	for _, v := range ints {
		if err = envInt(v.name, v.dst); err != nil {
			return c, err
		}
	}

	uints := []struct {
		name string
		dst  *uint64
	}{
		{"ACCESSES", &c.Accesses},
		{"FOOTPRINT", &c.Footprint},
	}
	for _, v := range uints {
		if err = envUint(v.name, v.dst); err != nil {
			return c, err
		}
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"INSTRUCTION_RATIO", &c.InstructionRatio},
		{"ANNUL_RATIO", &c.AnnulRatio},
	}
	for _, v := range floats {
		if err = envFloat(v.name, v.dst); err != nil {
			return c, err
		}
	}

	var bits uint64
	if s, ok := os.LookupEnv(envPrefix + "ICACHE_LINE_BITS"); ok {
		if bits, err = strconv.ParseUint(s, 10, 8); err != nil {
			return c, envErr("ICACHE_LINE_BITS", err)
		}
		c.ICacheLineBits = uint(bits)
	}

	if s, ok := os.LookupEnv(envPrefix + "DCACHE_LINE_BITS"); ok {
		if bits, err = strconv.ParseUint(s, 10, 8); err != nil {
			return c, envErr("DCACHE_LINE_BITS", err)
		}
		c.DCacheLineBits = uint(bits)
	}

	if s, ok := os.LookupEnv(envPrefix + "SEED"); ok {
		if c.Seed, err = strconv.ParseInt(s, 10, 64); err != nil {
			return c, envErr("SEED", err)
		}
	}

	if s, ok := os.LookupEnv(envPrefix + "TRACE_FILE"); ok {
		c.TraceFile = s
	}

	if s, ok := os.LookupEnv(envPrefix + "EVENT_LOG"); ok {
		c.EventLog = s
	}

	if s, ok := os.LookupEnv(envPrefix + "RECORD"); ok {
		c.Record = s
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"MONITOR", &c.Monitor},
		{"OPEN_BROWSER", &c.OpenBrowser},
		{"PARALLEL_IDS", &c.ParallelIDs},
	}
	for _, v := range bools {
		if err = envBool(v.name, v.dst); err != nil {
			return c, err
		}
	}

	return c, nil
}

func envInt(name string, dst *int) error {
	s, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return envErr(name, err)
	}

	*dst = v

	return nil
}

func envUint(name string, dst *uint64) error {
	s, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return envErr(name, err)
	}

	*dst = v

	return nil
}

func envFloat(name string, dst *float64) error {
	s, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return envErr(name, err)
	}

	*dst = v

	return nil
}

func envBool(name string, dst *bool) error {
	s, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return nil
	}

	v, err := strconv.ParseBool(s)
	if err != nil {
		return envErr(name, err)
	}

	*dst = v

	return nil
}

func envErr(name string, err error) error {
	return fmt.Errorf("invalid %s%s: %w", envPrefix, name, err)
}

func (c config) validate() error {
	if c.InstructionRatio < 0 || c.InstructionRatio > 1 {
		return fmt.Errorf("instruction ratio %f is not in [0, 1]",
			c.InstructionRatio)
	}

	if c.AnnulRatio < 0 || c.AnnulRatio > 1 {
		return fmt.Errorf("annul ratio %f is not in [0, 1]", c.AnnulRatio)
	}

	if c.Footprint == 0 {
		return fmt.Errorf("footprint must be positive")
	}

	return nil
}
