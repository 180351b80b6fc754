// Package diff compares paired files, first through a cheap whole-file
// identity check, then through a full normalized line-set comparison.
package diff

import (
	"context"
	"fmt"
	"os"

	"github.com/sdejongh/paircomp/pkg/loader"
	"github.com/sdejongh/paircomp/pkg/logging"
	"github.com/sdejongh/paircomp/pkg/models"
)

// Differ compares two files and reports their line-level differences
type Differ struct {
	quick  QuickComparator
	loader *loader.Loader
	logger logging.Logger
}

// New creates a differ. A nil quick comparator disables the fast path;
// a nil loader gets default thresholds.
func New(quick QuickComparator, ld *loader.Loader, logger logging.Logger) *Differ {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	if quick == nil {
		quick = NewNullQuick()
	}
	if ld == nil {
		ld = loader.New(logger)
	}
	return &Differ{
		quick:  quick,
		loader: ld,
		logger: logger,
	}
}

// Compare compares the two files. A nil difference means no difference
// was detected.
//
// The quick comparator sees the raw bytes, header line included, so its
// notion of "different" is stricter than the normalized comparison's.
// Only its Identical verdict short-circuits: byte-identical files are
// necessarily identical after header-skip, trim and sort, so both paths
// agree on every returned result. A Different verdict or any error
// (logged, never surfaced) falls through to the full comparison.
func (d *Differ) Compare(ctx context.Context, path1, path2 string) (*models.FileDifference, error) {
	for _, path := range []string{path1, path2} {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return nil, &models.NotFoundError{Path: path}
			}
			return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
		}
	}

	pairFields := logging.Fields{"file1": path1, "file2": path2}

	result, err := d.quick.QuickCompare(ctx, path1, path2)
	switch {
	case err != nil:
		d.logger.Warn(ctx, "quick compare failed, falling back to full comparison", logging.Fields{
			"method": d.quick.Name(),
			"file1":  path1,
			"file2":  path2,
			"error":  err.Error(),
		})
	case result == Identical:
		d.logger.Info(ctx, "files are identical", pairFields)
		return nil, nil
	case result == Different:
		d.logger.Debug(ctx, "quick compare reports a difference, running full comparison", pairFields)
	}

	lines1, err := d.loader.LoadSortedBody(ctx, path1)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path1, err)
	}
	lines2, err := d.loader.LoadSortedBody(ctx, path2)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path2, err)
	}

	difference := diffSets(lines1, lines2)
	if difference == nil {
		d.logger.Info(ctx, "files have no differences", pairFields)
		return nil, nil
	}

	d.logger.Info(ctx, "files have differences", logging.Fields{
		"file1":          path1,
		"file2":          path2,
		"only_in_first":  len(difference.OnlyInFirst),
		"only_in_second": len(difference.OnlyInSecond),
	})
	return difference, nil
}

// diffSets computes the symmetric set difference of two line
// collections. Returns nil when the sets are equal. The inputs arrive
// sorted, so each output sequence is sorted and duplicate-free.
func diffSets(lines1, lines2 []string) *models.FileDifference {
	set1 := toSet(lines1)
	set2 := toSet(lines2)

	onlyInFirst := subtract(lines1, set2)
	onlyInSecond := subtract(lines2, set1)

	if len(onlyInFirst) == 0 && len(onlyInSecond) == 0 {
		return nil
	}
	return &models.FileDifference{
		OnlyInFirst:  onlyInFirst,
		OnlyInSecond: onlyInSecond,
	}
}

func toSet(lines []string) map[string]struct{} {
	set := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		set[line] = struct{}{}
	}
	return set
}

// subtract returns the lines absent from other, each at most once
func subtract(lines []string, other map[string]struct{}) []string {
	var result []string
	seen := make(map[string]struct{})
	for _, line := range lines {
		if _, ok := other[line]; ok {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		result = append(result, line)
	}
	return result
}
