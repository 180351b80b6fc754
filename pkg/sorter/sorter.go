// Package sorter orders line collections lexicographically, either in
// process or by delegating to the platform sort utility.
package sorter

import (
	"context"
)

// MaxLineSize bounds scanner buffers wherever input lines or sorted
// output are read back (16 MiB). Shared so the streaming-read and
// readback limits cannot drift apart.
const MaxLineSize = 16 * 1024 * 1024

// Sorter defines the interface for line sorting strategies
type Sorter interface {
	// Sort returns the lines in lexicographic byte order. The input
	// slice is not modified.
	Sort(ctx context.Context, lines []string) ([]string, error)

	// Name returns the name of the sorting strategy
	Name() string
}
