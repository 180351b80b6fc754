package models

import (
	"time"
)

// QuickMethod defines the fast-path identity check used before the full
// line-set comparison
type QuickMethod string

const (
	// QuickExternal delegates to the platform whole-file compare utility
	QuickExternal QuickMethod = "external"
	// QuickBinary compares files byte-by-byte in process
	QuickBinary QuickMethod = "binary"
	// QuickHash compares SHA-256 hashes of both files
	QuickHash QuickMethod = "hash"
	// QuickNone disables the fast path entirely
	QuickNone QuickMethod = "none"
)

// CompareOperation represents one directory comparison run
type CompareOperation struct {
	ID              string
	Dir1            string
	Dir2            string
	QuickMethod     QuickMethod
	ExcludePatterns []string
	MaxWorkers      int
	BufferSize      int
	BandwidthLimit  int64 // bytes per second, 0 = unlimited
	ReportPath      string
	ReportFormat    string
	CreatedAt       time.Time
}

// Validate checks if the operation configuration is valid
func (op *CompareOperation) Validate() error {
	if op.Dir1 == "" {
		return &ValidationError{Field: "Dir1", Message: "first directory is required"}
	}
	if op.Dir2 == "" {
		return &ValidationError{Field: "Dir2", Message: "second directory is required"}
	}
	if op.MaxWorkers < 1 {
		return &ValidationError{Field: "MaxWorkers", Message: "max workers must be at least 1"}
	}
	if op.BufferSize < 1024 {
		return &ValidationError{Field: "BufferSize", Message: "buffer size must be at least 1024 bytes"}
	}
	switch op.QuickMethod {
	case QuickExternal, QuickBinary, QuickHash, QuickNone:
	default:
		return &ValidationError{Field: "QuickMethod", Message: "must be 'external', 'binary', 'hash' or 'none'"}
	}
	return nil
}
