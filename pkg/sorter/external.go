package sorter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/sdejongh/paircomp/internal/platform"
	"github.com/sdejongh/paircomp/pkg/models"
)

// ExternalSorter delegates sorting to the platform whole-line sort
// utility. Lines are written to a scoped temporary file, the utility is
// invoked on it, and its standard output is read back.
type ExternalSorter struct {
	command string
}

// NewExternalSorter creates a sorter backed by the platform sort utility
func NewExternalSorter() *ExternalSorter {
	return &ExternalSorter{command: platform.SortCommand()}
}

// Sort sorts the lines through the external utility. Failures return a
// *models.SortError carrying the utility's diagnostic output.
func (s *ExternalSorter) Sort(ctx context.Context, lines []string) ([]string, error) {
	tmp, err := os.CreateTemp("", "paircomp-sort-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary sort file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeLines(tmp, lines); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temporary sort file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush temporary sort file: %w", err)
	}

	// LC_ALL=C keeps the utility in byte order, matching the internal
	// sorter and the comparison contract.
	cmd := exec.CommandContext(ctx, s.command, tmp.Name())
	cmd.Env = append(os.Environ(), "LC_ALL=C")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &models.SortError{
			Output: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	if !utf8.Valid(stdout.Bytes()) {
		return nil, &models.SortError{Output: "sort utility produced non-UTF-8 output"}
	}

	return readLines(&stdout, len(lines))
}

// Name returns the sorter name
func (s *ExternalSorter) Name() string {
	return "external"
}

func writeLines(file *os.File, lines []string) error {
	w := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

func readLines(r *bytes.Buffer, capacity int) ([]string, error) {
	sorted := make([]string, 0, capacity)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxLineSize)
	for scanner.Scan() {
		sorted = append(sorted, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, &models.SortError{Output: "failed to read sorted output", Err: err}
	}
	return sorted, nil
}
