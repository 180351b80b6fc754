package output

import (
	"io"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"

	"github.com/sdejongh/paircomp/pkg/models"
)

// barTemplate renders elapsed time, a bar and the pair counters
const barTemplate = `{{etime . }} {{bar . "[" "=" ">" "-" "]"}} {{counters . }} {{percent . }}`

// ProgressFormatter renders a progress bar while pairs are compared and
// prints the human summary when the run completes
type ProgressFormatter struct {
	writer io.Writer
	mu     sync.Mutex
	bar    *pb.ProgressBar
}

// NewProgressFormatter creates a new progress bar formatter
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{}
}

// Start initializes and starts the progress bar
func (f *ProgressFormatter) Start(writer io.Writer, totalPairs int) error {
	if writer == nil {
		writer = os.Stdout
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.writer = writer
	f.bar = pb.New(totalPairs)
	f.bar.SetTemplateString(barTemplate)
	f.bar.SetWriter(writer)
	f.bar.Start()
	return nil
}

// Progress advances the bar as pairs finish
func (f *ProgressFormatter) Progress(update ProgressUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bar == nil {
		return nil
	}

	switch update.Type {
	case "pair_complete", "pair_error":
		f.bar.Increment()
	}
	return nil
}

// Complete stops the bar and prints the summary
func (f *ProgressFormatter) Complete(report *models.CompareReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
	if f.writer == nil {
		f.writer = io.Discard
	}
	writeSummary(f.writer, report)
	return nil
}

// Error reports a run-level error without disturbing the bar
func (f *ProgressFormatter) Error(err error) error {
	return nil
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
