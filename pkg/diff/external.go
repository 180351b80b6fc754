package diff

import (
	"context"
	"errors"
	"io"
	"os/exec"

	"github.com/sdejongh/paircomp/internal/platform"
	"github.com/sdejongh/paircomp/pkg/models"
)

// ExternalQuick delegates the identity check to the platform whole-file
// compare utility (diff on Unix-like systems, fc.exe on Windows)
type ExternalQuick struct{}

// NewExternalQuick creates a quick comparator backed by the platform
// compare utility
func NewExternalQuick() *ExternalQuick {
	return &ExternalQuick{}
}

// QuickCompare runs the compare utility on the raw files. Exit status 0
// means identical, 1 means different; anything else is reported as a
// *models.ProcessError with an Inconclusive verdict.
func (q *ExternalQuick) QuickCompare(ctx context.Context, path1, path2 string) (QuickResult, error) {
	name, args := platform.CompareCommand(path1, path2)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	err := cmd.Run()
	if err == nil {
		return Identical, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return Different, nil
	}

	return Inconclusive, &models.ProcessError{Tool: name, Err: err}
}

// Name returns the comparator name
func (q *ExternalQuick) Name() string {
	return "external"
}
