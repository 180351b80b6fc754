package models

import (
	"time"
)

// CompareReport represents the results of a directory comparison run
type CompareReport struct {
	// Operation details
	OperationID string `json:"operation_id"`
	Dir1        string `json:"dir1"`
	Dir2        string `json:"dir2"`

	// Timing
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration_ns"`

	// Statistics
	Stats Statistics `json:"stats"`

	// Per-pair results, ordered by pair identity (first path)
	Results []PairResult `json:"results"`

	// Errors encountered, one entry per failed pair
	Errors []CompareError `json:"errors,omitempty"`

	// Overall status
	Status CompareStatus `json:"status"`
}

// PairResult is the outcome of comparing a single file pair
type PairResult struct {
	Pair FilePair `json:"pair"`

	// Difference is nil when the pair is identical or errored
	Difference *FileDifference `json:"difference,omitempty"`

	// Error holds the failure detail for this pair, empty on success
	Error string `json:"error,omitempty"`

	// Duration is the wall time spent comparing this pair
	Duration time.Duration `json:"duration_ns"`
}

// Statistics holds comparison run metrics
type Statistics struct {
	// Pairing
	PairsFound int `json:"pairs_found"`

	// Outcomes
	PairsIdentical int `json:"pairs_identical"`
	PairsDiffering int `json:"pairs_differing"`
	PairsErrored   int `json:"pairs_errored"`

	// Line-level totals across all differing pairs
	LinesOnlyInFirst  int `json:"lines_only_in_first"`
	LinesOnlyInSecond int `json:"lines_only_in_second"`
}

// CompareError represents a failed pair comparison
type CompareError struct {
	Pair      FilePair  `json:"pair"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// CompareStatus represents the overall result
type CompareStatus string

const (
	// StatusSuccess indicates every pair compared without error
	StatusSuccess CompareStatus = "success"
	// StatusPartial indicates some pairs failed but iteration completed
	StatusPartial CompareStatus = "partial"
	// StatusFailed indicates pairing or iteration itself failed
	StatusFailed CompareStatus = "failed"
	// StatusCancelled indicates the run was cancelled
	StatusCancelled CompareStatus = "cancelled"
)

// ExitCode returns the process exit code for the status. Per-pair
// failures do not fail the process as long as iteration completed.
func (s CompareStatus) ExitCode() int {
	switch s {
	case StatusSuccess, StatusPartial:
		return 0
	case StatusCancelled:
		return 3
	default:
		return 2
	}
}
