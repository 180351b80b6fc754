package sorter

import (
	"context"
	"slices"
)

// InternalSorter sorts lines in memory. It is always correct and serves
// as the universal fallback on platforms without a reliable external
// sort utility.
type InternalSorter struct{}

// NewInternalSorter creates a new in-process sorter
func NewInternalSorter() *InternalSorter {
	return &InternalSorter{}
}

// Sort returns a sorted copy of the lines
func (s *InternalSorter) Sort(ctx context.Context, lines []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sorted := slices.Clone(lines)
	slices.Sort(sorted)
	return sorted, nil
}

// Name returns the sorter name
func (s *InternalSorter) Name() string {
	return "internal"
}
