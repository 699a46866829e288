// Package trace provides tracers that record the accesses handled by memory
// controllers.
package trace

import (
	"log"

	"github.com/sarchlab/cpuctrl/datarecording"
	"github.com/sarchlab/cpuctrl/mem/mem"
	"github.com/sarchlab/cpuctrl/sim/timing"
	"github.com/sarchlab/cpuctrl/tracing"
)

// memoryTransactionEntry is a row of the memory_transactions table.
type memoryTransactionEntry struct {
	ID        string
	Location  string
	What      string
	StartTime float64
	EndTime   float64
	Address   uint64
	ByteSize  uint64
	IsWrite   bool
	CoreID    int
	ThreadID  int
}

// memoryStepEntry is a row of the memory_steps table.
type memoryStepEntry struct {
	ID     string
	TaskID string
	Time   float64
	What   string
}

// A tracer writes the lifetime of accesses into a logger.
type tracer struct {
	timeTeller timing.TimeTeller
	logger     *log.Logger
}

// NewTracer creates a tracer that prints one line per event.
func NewTracer(logger *log.Logger, timeTeller timing.TimeTeller) tracing.Tracer {
	t := new(tracer)
	t.logger = logger
	t.timeTeller = timeTeller

	return t
}

// StartTask marks the start of an access.
func (t *tracer) StartTask(task tracing.Task) {
	task.StartTime = t.timeTeller.Now()

	req, ok := task.Detail.(*mem.AccessReq)
	if !ok {
		return
	}

	t.logger.Printf(
		"start, %.12f, %s, %s, %s, 0x%x, %d\n",
		task.StartTime,
		task.Where,
		task.ID,
		task.What,
		req.Address,
		req.ByteSize,
	)
}

// StepTask marks that the access has reached a milestone.
func (t *tracer) StepTask(task tracing.Task) {
	task.Steps[0].Time = t.timeTeller.Now()

	t.logger.Printf("step, %.12f, %s, %s\n",
		task.Steps[0].Time,
		task.ID,
		task.Steps[0].What)
}

// EndTask marks the end of an access.
func (t *tracer) EndTask(task tracing.Task) {
	task.EndTime = t.timeTeller.Now()

	t.logger.Printf("end, %.12f, %s\n", task.EndTime, task.ID)
}

// A dbTracer writes the lifetime of accesses into a database.
type dbTracer struct {
	timeTeller          timing.TimeTeller
	dataRecorder        datarecording.DataRecorder
	pendingTransactions map[string]*memoryTransactionEntry
}

// NewDBTracer creates a tracer that records accesses with the data recorder.
func NewDBTracer(
	dataRecorder datarecording.DataRecorder,
	timeTeller timing.TimeTeller,
) tracing.Tracer {
	t := &dbTracer{
		timeTeller:          timeTeller,
		dataRecorder:        dataRecorder,
		pendingTransactions: make(map[string]*memoryTransactionEntry),
	}

	t.dataRecorder.CreateTable("memory_transactions", memoryTransactionEntry{})
	t.dataRecorder.CreateTable("memory_steps", memoryStepEntry{})

	return t
}

// StartTask marks the start of an access.
func (t *dbTracer) StartTask(task tracing.Task) {
	task.StartTime = t.timeTeller.Now()

	req, ok := task.Detail.(*mem.AccessReq)
	if !ok {
		return
	}

	entry := &memoryTransactionEntry{
		ID:        task.ID,
		Location:  task.Where,
		What:      task.What,
		StartTime: task.StartTime,
		Address:   req.Address,
		ByteSize:  req.ByteSize,
		IsWrite:   req.IsWrite,
		CoreID:    req.CoreID,
		ThreadID:  req.ThreadID,
	}

	t.pendingTransactions[task.ID] = entry
}

// StepTask records that the access has reached a milestone.
func (t *dbTracer) StepTask(task tracing.Task) {
	if len(task.Steps) == 0 {
		return
	}

	task.Steps[0].Time = t.timeTeller.Now()

	entry := memoryStepEntry{
		ID:     task.ID + "_step_" + task.Steps[0].What,
		TaskID: task.ID,
		Time:   task.Steps[0].Time,
		What:   task.Steps[0].What,
	}

	t.dataRecorder.InsertData("memory_steps", entry)
}

// EndTask records the access.
func (t *dbTracer) EndTask(task tracing.Task) {
	entry, exists := t.pendingTransactions[task.ID]
	if !exists {
		return
	}

	if task.EndTime == 0 {
		task.EndTime = t.timeTeller.Now()
	}

	entry.EndTime = task.EndTime
	t.dataRecorder.InsertData("memory_transactions", *entry)

	delete(t.pendingTransactions, task.ID)
}
