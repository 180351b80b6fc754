package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/sdejongh/paircomp/pkg/models"
)

// HumanFormatter formats output in human-readable form, one line per
// pair with a difference or error
type HumanFormatter struct {
	writer     io.Writer
	totalPairs int
	termWidth  int
	quiet      bool
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter(quiet bool) *HumanFormatter {
	return &HumanFormatter{quiet: quiet}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, totalPairs int) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	f.totalPairs = totalPairs
	f.termWidth = detectWidth(writer)

	if !f.quiet {
		fmt.Fprintf(writer, "Comparing %d file pairs\n", totalPairs)
	}
	return nil
}

// Progress reports per-pair outcomes
func (f *HumanFormatter) Progress(update ProgressUpdate) error {
	if f.writer == nil || f.quiet {
		return nil
	}

	switch update.Type {
	case "pair_complete":
		if update.HasDifference {
			fmt.Fprintf(f.writer, "[%d/%d] ≠ %s\n",
				update.CurrentPair, f.totalPairs,
				truncate(pairLabel(update.Pair), f.termWidth-12))
		}

	case "pair_error":
		fmt.Fprintf(f.writer, "[%d/%d] ✗ %s: %v\n",
			update.CurrentPair, f.totalPairs,
			truncate(pairLabel(update.Pair), f.termWidth-12), update.Error)
	}

	return nil
}

// Complete finalizes output and displays the summary
func (f *HumanFormatter) Complete(report *models.CompareReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}
	writeSummary(f.writer, report)
	return nil
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// writeSummary prints the run summary shared by the human and progress
// formatters
func writeSummary(w io.Writer, report *models.CompareReport) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(w, "\nComparison completed in %s\n\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Pairs compared:        %d\n", report.Stats.PairsFound)
	fmt.Fprintf(w, "  Identical:             %s\n", green(report.Stats.PairsIdentical))

	differing := fmt.Sprint(report.Stats.PairsDiffering)
	if report.Stats.PairsDiffering > 0 {
		differing = red(report.Stats.PairsDiffering)
	}
	fmt.Fprintf(w, "  With differences:      %s\n", differing)

	errored := fmt.Sprint(report.Stats.PairsErrored)
	if report.Stats.PairsErrored > 0 {
		errored = yellow(report.Stats.PairsErrored)
	}
	fmt.Fprintf(w, "  Errored:               %s\n", errored)

	fmt.Fprintf(w, "\nStatus: %s\n", report.Status)

	if len(report.Errors) > 0 {
		fmt.Fprintf(w, "\nErrors:\n")
		for _, compErr := range report.Errors {
			fmt.Fprintf(w, "  %s: %s\n", pairLabel(compErr.Pair), compErr.Error)
		}
	}
}

// pairLabel renders both short paths of a pair
func pairLabel(pair models.FilePair) string {
	return ShortPath(pair.Path1) + " <> " + ShortPath(pair.Path2)
}

// detectWidth returns the terminal width, defaulting to 120 for pipes
// and redirects
func detectWidth(w io.Writer) int {
	if file, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 120
}

// truncate shortens s to at most width runes
func truncate(s string, width int) string {
	if width < 8 {
		width = 8
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
