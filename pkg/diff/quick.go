package diff

import (
	"context"
	"io"

	"github.com/sdejongh/paircomp/internal/platform"
	"github.com/sdejongh/paircomp/pkg/models"
)

// QuickResult is the verdict of a fast-path identity check
type QuickResult string

const (
	// Identical means the files are byte-for-byte equal
	Identical QuickResult = "identical"
	// Different means the raw files differ somewhere
	Different QuickResult = "different"
	// Inconclusive means the check could not decide
	Inconclusive QuickResult = "inconclusive"
)

// QuickComparator is a cheap whole-file identity pre-check run on the
// raw, undecoded files. Only an Identical verdict is trusted by the
// differ; everything else falls through to the full comparison.
type QuickComparator interface {
	// QuickCompare reports whether the two files are byte-identical
	QuickCompare(ctx context.Context, path1, path2 string) (QuickResult, error)

	// Name returns the name of the quick-compare strategy
	Name() string
}

// ReaderWrapper wraps a reader, e.g. for rate limiting
type ReaderWrapper func(io.Reader) io.Reader

// NullQuick never decides, forcing every comparison down the slow path
type NullQuick struct{}

// NewNullQuick creates a quick comparator that is always inconclusive
func NewNullQuick() *NullQuick {
	return &NullQuick{}
}

// QuickCompare always returns Inconclusive
func (q *NullQuick) QuickCompare(ctx context.Context, path1, path2 string) (QuickResult, error) {
	return Inconclusive, nil
}

// Name returns the comparator name
func (q *NullQuick) Name() string {
	return "none"
}

// NewQuick returns the quick comparator for the configured method.
// Selection happens once at startup: when the external method is
// requested but the platform has no usable compare utility, the
// in-process binary comparator takes its place.
func NewQuick(method models.QuickMethod, bufferSize int) QuickComparator {
	switch method {
	case models.QuickNone:
		return NewNullQuick()
	case models.QuickBinary:
		return NewBinaryQuick(bufferSize)
	case models.QuickHash:
		return NewHashQuick(bufferSize)
	default:
		if platform.CompareUtilityAvailable() {
			return NewExternalQuick()
		}
		return NewBinaryQuick(bufferSize)
	}
}
