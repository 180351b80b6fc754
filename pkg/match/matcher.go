// Package match pairs files across two directories by the structured
// filename convention SC_<idGroup>_<dateStamp>_<version>_<AXX>_Z.
package match

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/sdejongh/paircomp/pkg/logging"
	"github.com/sdejongh/paircomp/pkg/models"
)

const (
	prefixToken = "SC"
	suffixToken = "Z"
	minSegments = 6
)

// ParseKey extracts the pairing key from a filename. The extension is
// ignored; the stem must have at least six underscore-delimited
// segments, starting with "SC" and ending with "Z". The key is built
// from the second, third and second-to-last segments; the version
// segment never participates in matching.
func ParseKey(name string) (models.PairKey, bool) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.Split(stem, "_")
	if len(parts) < minSegments || parts[0] != prefixToken || parts[len(parts)-1] != suffixToken {
		return models.PairKey{}, false
	}
	return models.PairKey{
		IDGroup:   parts[1],
		DateStamp: parts[2],
		Variant:   parts[len(parts)-2],
	}, true
}

// Matcher scans two directories and emits matched file pairs
type Matcher struct {
	exclude []string
	logger  logging.Logger
}

// NewMatcher creates a matcher. Filenames matching any of the exclude
// glob patterns are skipped in both directories.
func NewMatcher(exclude []string, logger logging.Logger) *Matcher {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Matcher{
		exclude: exclude,
		logger:  logger,
	}
}

// Match lists regular files in both directories (non-recursive,
// symlinks and directories excluded) and pairs every conventioned file
// in dir1 with the dir2 file sharing its key. Files with no match and
// names outside the convention are silently dropped.
func (m *Matcher) Match(ctx context.Context, dir1, dir2 string) ([]models.FilePair, error) {
	files1, err := m.listFiles(dir1)
	if err != nil {
		return nil, err
	}
	files2, err := m.listFiles(dir2)
	if err != nil {
		return nil, err
	}

	lookup := make(map[models.PairKey]string, len(files2))
	for _, name := range files2 {
		key, ok := ParseKey(name)
		if !ok {
			continue
		}
		if previous, dup := lookup[key]; dup {
			// Last write wins, matching map insertion semantics, but
			// ambiguous matches are worth surfacing.
			m.logger.Warn(ctx, "duplicate pairing key in second directory", logging.Fields{
				"key":      key.String(),
				"kept":     name,
				"replaced": filepath.Base(previous),
			})
		}
		lookup[key] = filepath.Join(dir2, name)
	}

	var pairs []models.FilePair
	for _, name := range files1 {
		key, ok := ParseKey(name)
		if !ok {
			continue
		}
		if path2, found := lookup[key]; found {
			pairs = append(pairs, models.FilePair{
				Path1: filepath.Join(dir1, name),
				Path2: path2,
			})
		}
	}

	m.logger.Info(ctx, "generated file pairs", logging.Fields{
		"dir1":  dir1,
		"dir2":  dir2,
		"pairs": len(pairs),
	})
	return pairs, nil
}

// listFiles returns the names of regular files in dir, in directory
// listing order
func (m *Matcher) listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if m.excluded(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func (m *Matcher) excluded(name string) bool {
	for _, pattern := range m.exclude {
		if pattern == "" {
			continue
		}
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
