package output

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"github.com/sdejongh/paircomp/pkg/models"
)

// JSONFormatter formats output as a single JSON document for automation
// and scripting
type JSONFormatter struct {
	writer io.Writer
	mu     sync.Mutex
	events []JSONEvent
}

// JSONEvent represents a single event in the JSON output
type JSONEvent struct {
	Timestamp time.Time        `json:"timestamp"`
	Type      string           `json:"type"`
	Pair      *models.FilePair `json:"pair,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// jsonDocument is the complete document written at the end of a run
type jsonDocument struct {
	Events []JSONEvent           `json:"events,omitempty"`
	Report *models.CompareReport `json:"report"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, totalPairs int) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	return nil
}

// Progress records pair events for the final document
func (f *JSONFormatter) Progress(update ProgressUpdate) error {
	if update.Type == "pair_start" {
		return nil
	}

	event := JSONEvent{
		Timestamp: time.Now().UTC(),
		Type:      update.Type,
	}
	pair := update.Pair
	event.Pair = &pair
	if update.Error != nil {
		event.Error = update.Error.Error()
	}

	f.mu.Lock()
	f.events = append(f.events, event)
	f.mu.Unlock()
	return nil
}

// Complete writes the document
func (f *JSONFormatter) Complete(report *models.CompareReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonDocument{
		Events: f.events,
		Report: report,
	})
}

// Error reports a run-level error as a JSON event
func (f *JSONFormatter) Error(err error) error {
	f.mu.Lock()
	f.events = append(f.events, JSONEvent{
		Timestamp: time.Now().UTC(),
		Type:      "error",
		Error:     err.Error(),
	})
	f.mu.Unlock()
	return nil
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
