package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sdejongh/paircomp/pkg/models"
)

// reportTimestampLayout is used in default report filenames and headers
const reportTimestampLayout = "20060102_150405"

// DefaultReportPath returns the report filename used when none is given
func DefaultReportPath(now time.Time) string {
	return fmt.Sprintf("comparison_report_%s.txt", now.Format(reportTimestampLayout))
}

// WriteReport writes the comparison report to a file and returns the
// path actually written. An empty path selects a timestamped default
// name; a path without an extension gets the timestamp appended.
// Format can be "human" or "json".
func WriteReport(report *models.CompareReport, path, format string) (string, error) {
	now := time.Now()
	switch {
	case path == "":
		path = DefaultReportPath(now)
	case filepath.Ext(path) == "":
		dir := filepath.Dir(path)
		stem := filepath.Base(path)
		path = filepath.Join(dir, fmt.Sprintf("%s_%s.txt", stem, now.Format(reportTimestampLayout)))
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	switch format {
	case "json":
		err = writeReportJSON(report, file)
	default: // "human"
		err = writeReportHuman(report, file, now)
	}
	if err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}
	return path, nil
}

// writeReportHuman mirrors the console report: per-pair difference
// listings followed by a summary block
func writeReportHuman(report *models.CompareReport, w io.Writer, now time.Time) error {
	fmt.Fprintf(w, "File comparison report - generated: %s\n", now.Format(reportTimestampLayout))
	fmt.Fprintf(w, "Compared directories: %s and %s\n", report.Dir1, report.Dir2)
	fmt.Fprintf(w, "File pairs: %d\n\n", report.Stats.PairsFound)

	for _, result := range report.Results {
		short1 := ShortPath(result.Pair.Path1)
		short2 := ShortPath(result.Pair.Path2)

		switch {
		case result.Error != "":
			fmt.Fprintf(w, "Comparison error: %s and %s\n", short1, short2)
			fmt.Fprintf(w, "Error detail: %s\n\n", result.Error)

		case result.Difference != nil:
			fmt.Fprintf(w, "Differences found: %s and %s\n", short1, short2)
			if len(result.Difference.OnlyInFirst) > 0 {
				fmt.Fprintf(w, "Lines only in %s:\n", short1)
				for _, line := range result.Difference.OnlyInFirst {
					fmt.Fprintf(w, "  %s\n", line)
				}
			}
			if len(result.Difference.OnlyInSecond) > 0 {
				fmt.Fprintf(w, "Lines only in %s:\n", short2)
				for _, line := range result.Difference.OnlyInSecond {
					fmt.Fprintf(w, "  %s\n", line)
				}
			}
			fmt.Fprintf(w, "\n")
		}
		// Identical pairs are omitted to keep the report concise.
	}

	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  - pairs with differences: %d\n", report.Stats.PairsDiffering)
	fmt.Fprintf(w, "  - pairs with errors: %d\n", report.Stats.PairsErrored)
	fmt.Fprintf(w, "  - identical pairs: %d\n", report.Stats.PairsIdentical)
	return nil
}

func writeReportJSON(report *models.CompareReport, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// ShortPath renders a path as its parent directory plus filename,
// enough to tell the two sides of a pair apart
func ShortPath(path string) string {
	return filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path))
}
