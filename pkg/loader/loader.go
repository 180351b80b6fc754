// Package loader reads comparison input files into normalized, sorted
// line collections.
package loader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sdejongh/paircomp/internal/platform"
	"github.com/sdejongh/paircomp/pkg/charset"
	"github.com/sdejongh/paircomp/pkg/logging"
	"github.com/sdejongh/paircomp/pkg/models"
	"github.com/sdejongh/paircomp/pkg/sorter"
)

const (
	// DefaultMaxMemoryBytes is the file size above which content is
	// never decoded as a whole (100 MiB)
	DefaultMaxMemoryBytes = 100 * 1024 * 1024

	// DefaultExternalSortLines is the line count above which sorting is
	// delegated to the external utility
	DefaultExternalSortLines = 100_000
)

// Loader decodes a file with its detected encoding, strips the header
// line, trims the remaining lines and returns them sorted. Both
// thresholds are policy constants, exposed as fields so callers (and
// tests) can tune them.
type Loader struct {
	// MaxMemoryBytes routes larger files to the streaming path
	MaxMemoryBytes int64

	// ExternalSortLines routes larger line collections to the external
	// sorter
	ExternalSortLines int

	internal sorter.Sorter
	external sorter.Sorter // nil when the platform has no usable sort utility
	logger   logging.Logger
}

// New creates a loader with default thresholds. External sorting is
// enabled only when the platform sort utility is available.
func New(logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	l := &Loader{
		MaxMemoryBytes:    DefaultMaxMemoryBytes,
		ExternalSortLines: DefaultExternalSortLines,
		internal:          sorter.NewInternalSorter(),
		logger:            logger,
	}
	if platform.SortUtilityAvailable() {
		l.external = sorter.NewExternalSorter()
	}
	return l
}

// LoadSortedBody returns the file's lines after the first (the header),
// trimmed and sorted in lexicographic byte order. A file with at most
// one line yields an empty body.
func (l *Loader) LoadSortedBody(ctx context.Context, path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &models.NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}

	if info.Size() > l.MaxMemoryBytes {
		return l.loadStreaming(ctx, path)
	}

	name, err := charset.Detect(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	text, err := charset.DecodeBytes(data, name)
	if err != nil {
		return nil, &models.EncodingError{Path: path, Charset: name, Err: err}
	}

	return l.sortBody(ctx, path, splitBody(text))
}

// loadStreaming decodes line-by-line without materializing the file
// content. Memory use is bounded by the line count, not the byte size.
func (l *Loader) loadStreaming(ctx context.Context, path string) ([]string, error) {
	name, err := charset.Detect(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(charset.NewReader(file, name))
	scanner.Buffer(make([]byte, 64*1024), sorter.MaxLineSize)

	var lines []string
	header := true
	for scanner.Scan() {
		if header {
			header = false
			continue
		}
		lines = append(lines, strings.TrimSpace(scanner.Text()))

		if len(lines)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &models.EncodingError{Path: path, Charset: name, Err: err}
	}

	return l.sortBody(ctx, path, lines)
}

// sortBody applies the size-based sorter choice. When the external
// sorter fails, the body is re-sorted in process instead of failing the
// pair.
func (l *Loader) sortBody(ctx context.Context, path string, lines []string) ([]string, error) {
	chosen := l.internal
	if len(lines) > l.ExternalSortLines && l.external != nil {
		chosen = l.external
	}

	sorted, err := chosen.Sort(ctx, lines)
	if err != nil {
		var sortErr *models.SortError
		if errors.As(err, &sortErr) && chosen != l.internal {
			l.logger.Warn(ctx, "external sort failed, falling back to in-process sort", logging.Fields{
				"path":  path,
				"error": sortErr.Error(),
			})
			return l.internal.Sort(ctx, lines)
		}
		return nil, err
	}
	return sorted, nil
}

// splitBody drops the header line and trims the rest. The trailing
// newline of the last line does not produce an empty element.
func splitBody(text string) []string {
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	if raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	if len(raw) <= 1 {
		return nil
	}
	body := make([]string, 0, len(raw)-1)
	for _, line := range raw[1:] {
		body = append(body, strings.TrimSpace(line))
	}
	return body
}
