// Package id generates identifiers for requests and events.
package id

import (
	"log"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
)

// IDGenerator can generate IDs.
type IDGenerator interface {
	// Generate an ID
	Generate() string
}

var (
	generatorMutex        sync.Mutex
	generatorInstantiated bool
	generator             IDGenerator
)

// UseSequentialIDGenerator makes Generate return deterministic, increasing
// IDs. It must be called before the first ID is generated.
func UseSequentialIDGenerator() {
	generatorMutex.Lock()
	defer generatorMutex.Unlock()

	if generatorInstantiated {
		log.Panic("cannot change id generator type after using it")
	}

	generator = &sequentialIDGenerator{}
	generatorInstantiated = true
}

// UseParallelIDGenerator makes Generate return globally unique IDs that are
// safe to create from multiple goroutines. The IDs are not deterministic.
func UseParallelIDGenerator() {
	generatorMutex.Lock()
	defer generatorMutex.Unlock()

	if generatorInstantiated {
		log.Panic("cannot change id generator type after using it")
	}

	generator = parallelIDGenerator{}
	generatorInstantiated = true
}

// GetIDGenerator returns the ID generator used in the current simulation.
func GetIDGenerator() IDGenerator {
	generatorMutex.Lock()
	defer generatorMutex.Unlock()

	if !generatorInstantiated {
		generator = &sequentialIDGenerator{}
		generatorInstantiated = true
	}

	return generator
}

// Generate returns a new ID from the current generator.
func Generate() string {
	return GetIDGenerator().Generate()
}

// NewIDGenerator returns a private sequential generator, independent from the
// process-wide one.
func NewIDGenerator() IDGenerator {
	return &sequentialIDGenerator{}
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)

	return strconv.FormatUint(idNumber, 10)
}

type parallelIDGenerator struct{}

func (g parallelIDGenerator) Generate() string {
	return xid.New().String()
}
