package runner

import (
	"time"

	"github.com/sdejongh/paircomp/pkg/models"
)

// TaskStatus represents the status of a pair task in the pipeline
type TaskStatus string

const (
	// TaskPending indicates the task is waiting to be processed
	TaskPending TaskStatus = "pending"
	// TaskProcessing indicates the task is currently held by a worker
	TaskProcessing TaskStatus = "processing"
	// TaskCompleted indicates the comparison finished
	TaskCompleted TaskStatus = "completed"
	// TaskError indicates the comparison failed
	TaskError TaskStatus = "error"
)

// PairTask represents one file pair flowing through the pipeline. Each
// task is owned by exactly one worker at a time; tasks share no state.
type PairTask struct {
	// Pair is the matched file pair to compare
	Pair models.FilePair

	// Status tracks the current state of this task
	Status TaskStatus

	// Difference is the comparison outcome; nil means identical
	Difference *models.FileDifference

	// Err holds any error that occurred during comparison
	Err error

	// Duration tracks how long the worker spent on this task
	Duration time.Duration

	// WorkerID identifies which worker processed this task
	WorkerID int
}

// NewPairTask creates a pending task for a matched pair
func NewPairTask(pair models.FilePair) *PairTask {
	return &PairTask{
		Pair:   pair,
		Status: TaskPending,
	}
}

// MarkProcessing marks the task as being processed by a worker
func (t *PairTask) MarkProcessing(workerID int) {
	t.Status = TaskProcessing
	t.WorkerID = workerID
}

// MarkCompleted records the comparison outcome
func (t *PairTask) MarkCompleted(difference *models.FileDifference, duration time.Duration) {
	t.Status = TaskCompleted
	t.Difference = difference
	t.Duration = duration
}

// MarkError records a comparison failure
func (t *PairTask) MarkError(err error, duration time.Duration) {
	t.Status = TaskError
	t.Err = err
	t.Duration = duration
}
