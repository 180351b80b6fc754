package output

import (
	"io"

	"github.com/sdejongh/paircomp/pkg/models"
)

// ProgressUpdate represents a progress notification during a comparison run
type ProgressUpdate struct {
	Type          string // "pair_start", "pair_complete", "pair_error"
	Pair          models.FilePair
	CurrentPair   int
	HasDifference bool
	Error         error
}

// Formatter defines the interface for console output formatting.
// Implementations include human-readable, JSON and progress-bar output.
type Formatter interface {
	// Start initializes the formatter for a new comparison run
	Start(writer io.Writer, totalPairs int) error

	// Progress reports progress as pairs complete
	Progress(update ProgressUpdate) error

	// Complete finalizes output and displays the summary
	Complete(report *models.CompareReport) error

	// Error reports a run-level error
	Error(err error) error

	// Name returns the formatter name
	Name() string
}
