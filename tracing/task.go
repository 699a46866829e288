package tracing

import "github.com/sarchlab/cpuctrl/sim/timing"

// A TaskStep represents a milestone in the processing of task
type TaskStep struct {
	Time timing.VTimeInSec `json:"time"`
	What string            `json:"what"`
}

// A Task is a unit of work that is traced, for example a memory access while
// it is tracked by a controller.
type Task struct {
	ID        string            `json:"id"`
	ParentID  string            `json:"parent_id"`
	Kind      string            `json:"kind"`
	What      string            `json:"what"`
	Where     string            `json:"where"`
	StartTime timing.VTimeInSec `json:"start_time"`
	EndTime   timing.VTimeInSec `json:"end_time"`
	Steps     []TaskStep        `json:"steps"`
	Detail    interface{}       `json:"-"`
}

// TaskFilter is a function that can filter interesting tasks. If this function
// returns true, the task is considered useful.
type TaskFilter func(t Task) bool
