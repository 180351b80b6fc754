package models

import "fmt"

// NotFoundError indicates a compared path does not exist.
// It is fatal for the pair it belongs to, never for the batch.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file does not exist: %s", e.Path)
}

// EncodingError indicates a file could not be decoded with the
// detected character encoding.
type EncodingError struct {
	Path    string
	Charset string
	Err     error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("failed to decode %s as %s: %v", e.Path, e.Charset, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// SortError indicates the external sort utility failed or produced
// output that could not be read back.
type SortError struct {
	// Output is the utility's diagnostic output, if any
	Output string
	Err    error
}

func (e *SortError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("external sort failed: %s", e.Output)
	}
	return fmt.Sprintf("external sort failed: %v", e.Err)
}

func (e *SortError) Unwrap() error {
	return e.Err
}

// ProcessError indicates an external compare utility could not be
// invoked or exited abnormally. It triggers the slow-path fallback and
// is never surfaced to the caller of a comparison.
type ProcessError struct {
	Tool string
	Err  error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("failed to run %s: %v", e.Tool, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// ValidationError represents a configuration or operation validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
