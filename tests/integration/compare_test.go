package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/paircomp/pkg/diff"
	"github.com/sdejongh/paircomp/pkg/loader"
	"github.com/sdejongh/paircomp/pkg/match"
	"github.com/sdejongh/paircomp/pkg/models"
	"github.com/sdejongh/paircomp/pkg/output"
	"github.com/sdejongh/paircomp/pkg/runner"
)

// TestHelper provides utilities for integration tests
type TestHelper struct {
	t       *testing.T
	tempDir string
	dir1    string
	dir2    string
}

// NewTestHelper creates a new integration test helper
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "paircomp-integration-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dir1 := filepath.Join(tempDir, "run1")
	dir2 := filepath.Join(tempDir, "run2")

	if err := os.MkdirAll(dir1, 0755); err != nil {
		t.Fatalf("failed to create dir1: %v", err)
	}
	if err := os.MkdirAll(dir2, 0755); err != nil {
		t.Fatalf("failed to create dir2: %v", err)
	}

	return &TestHelper{
		t:       t,
		tempDir: tempDir,
		dir1:    dir1,
		dir2:    dir2,
	}
}

// Cleanup removes all temporary files
func (h *TestHelper) Cleanup() {
	os.RemoveAll(h.tempDir)
}

// CreateFile1 creates a file in the first directory
func (h *TestHelper) CreateFile1(name, content string) {
	h.t.Helper()
	if err := os.WriteFile(filepath.Join(h.dir1, name), []byte(content), 0644); err != nil {
		h.t.Fatalf("failed to create file: %v", err)
	}
}

// CreateFile2 creates a file in the second directory
func (h *TestHelper) CreateFile2(name, content string) {
	h.t.Helper()
	if err := os.WriteFile(filepath.Join(h.dir2, name), []byte(content), 0644); err != nil {
		h.t.Fatalf("failed to create file: %v", err)
	}
}

// Operation builds a compare operation for the helper directories
func (h *TestHelper) Operation(quick models.QuickMethod) *models.CompareOperation {
	return &models.CompareOperation{
		ID:           uuid.New().String(),
		Dir1:         h.dir1,
		Dir2:         h.dir2,
		QuickMethod:  quick,
		MaxWorkers:   4,
		BufferSize:   65536,
		ReportFormat: "human",
		CreatedAt:    time.Now(),
	}
}

// Engine builds a fully wired engine
func (h *TestHelper) Engine(quick models.QuickMethod) *runner.Engine {
	return runner.NewEngine(
		match.NewMatcher(nil, nil),
		diff.New(diff.NewQuick(quick, 65536), loader.New(nil), nil),
		nil,
		nil,
	)
}

// TestFullComparisonRun exercises discovery, comparison and report
// writing end to end
func TestFullComparisonRun(t *testing.T) {
	helper := NewTestHelper(t)
	defer helper.Cleanup()

	// Identical pair, reordered body and different version segment
	helper.CreateFile1("SC_GROUP1_20240115_V1_A01_Z.csv", "ID;VALUE\nrow1\nrow2\nrow3\n")
	helper.CreateFile2("SC_GROUP1_20240115_V2_A01_Z.csv", "ID;VALUE\nrow3\nrow1\nrow2\n")

	// Differing pair
	helper.CreateFile1("SC_GROUP2_20240115_V1_A01_Z.csv", "ID;VALUE\ncommon\nonly-first\n")
	helper.CreateFile2("SC_GROUP2_20240115_V1_A01_Z.csv", "ID;VALUE\ncommon\nonly-second\n")

	// Unmatched files on both sides
	helper.CreateFile1("SC_GROUP3_20240115_V1_A01_Z.csv", "h\nx\n")
	helper.CreateFile2("SC_GROUP4_20240115_V1_A01_Z.csv", "h\ny\n")

	// Files outside the convention
	helper.CreateFile1("notes.txt", "ignored")
	helper.CreateFile2("notes.txt", "ignored")

	operation := helper.Operation(models.QuickNone)
	report, err := helper.Engine(models.QuickNone).Run(context.Background(), operation)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Stats.PairsFound != 2 {
		t.Errorf("PairsFound = %d, want 2", report.Stats.PairsFound)
	}
	if report.Stats.PairsIdentical != 1 {
		t.Errorf("PairsIdentical = %d, want 1", report.Stats.PairsIdentical)
	}
	if report.Stats.PairsDiffering != 1 {
		t.Errorf("PairsDiffering = %d, want 1", report.Stats.PairsDiffering)
	}
	if report.Status != models.StatusSuccess {
		t.Errorf("Status = %s, want %s", report.Status, models.StatusSuccess)
	}

	// Write and inspect the report file
	reportPath := filepath.Join(helper.tempDir, "report.txt")
	written, err := output.WriteReport(report, reportPath, "human")
	if err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "only-first") {
		t.Errorf("report missing first-side difference:\n%s", content)
	}
	if !strings.Contains(content, "only-second") {
		t.Errorf("report missing second-side difference:\n%s", content)
	}
	if !strings.Contains(content, "pairs with differences: 1") {
		t.Errorf("report missing summary:\n%s", content)
	}
}

// TestFullRunWithFastPath verifies the run with each fast-path method
func TestFullRunWithFastPath(t *testing.T) {
	methods := []models.QuickMethod{
		models.QuickExternal,
		models.QuickBinary,
		models.QuickHash,
		models.QuickNone,
	}

	for _, method := range methods {
		t.Run(string(method), func(t *testing.T) {
			helper := NewTestHelper(t)
			defer helper.Cleanup()

			helper.CreateFile1("SC_G1_20240101_V1_A01_Z.csv", "h\nsame\n")
			helper.CreateFile2("SC_G1_20240101_V1_A01_Z.csv", "h\nsame\n")
			helper.CreateFile1("SC_G2_20240101_V1_A01_Z.csv", "h\na\n")
			helper.CreateFile2("SC_G2_20240101_V1_A01_Z.csv", "h\nb\n")

			report, err := helper.Engine(method).Run(context.Background(), helper.Operation(method))
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			if report.Stats.PairsIdentical != 1 {
				t.Errorf("PairsIdentical = %d, want 1", report.Stats.PairsIdentical)
			}
			if report.Stats.PairsDiffering != 1 {
				t.Errorf("PairsDiffering = %d, want 1", report.Stats.PairsDiffering)
			}
		})
	}
}

// TestFullRunPartialFailure verifies a vanished file marks the run
// partial but leaves the rest of the batch intact
func TestFullRunPartialFailure(t *testing.T) {
	helper := NewTestHelper(t)
	defer helper.Cleanup()

	helper.CreateFile1("SC_G1_20240101_V1_A01_Z.csv", "h\na\n")
	helper.CreateFile2("SC_G1_20240101_V1_A01_Z.csv", "h\na\n")
	helper.CreateFile1("SC_G2_20240101_V1_A01_Z.csv", "h\na\n")
	helper.CreateFile2("SC_G2_20240101_V1_A01_Z.csv", "h\na\n")

	// Remove one file after discovery by running the matcher first
	matcher := match.NewMatcher(nil, nil)
	pairs, err := matcher.Match(context.Background(), helper.dir1, helper.dir2)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if err := os.Remove(pairs[0].Path2); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}

	operation := helper.Operation(models.QuickNone)
	pipeline := runner.NewPipeline(
		diff.New(diff.NewNullQuick(), loader.New(nil), nil),
		nil, nil, operation, runner.DefaultPipelineConfig(),
	)

	report, err := pipeline.Run(context.Background(), pairs)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Status != models.StatusPartial {
		t.Errorf("Status = %s, want %s", report.Status, models.StatusPartial)
	}
	if report.Stats.PairsErrored != 1 {
		t.Errorf("PairsErrored = %d, want 1", report.Stats.PairsErrored)
	}
	if report.Stats.PairsIdentical != 1 {
		t.Errorf("PairsIdentical = %d, want 1", report.Stats.PairsIdentical)
	}
	if report.Status.ExitCode() != 0 {
		t.Errorf("ExitCode = %d, want 0 for a completed run", report.Status.ExitCode())
	}
}

// TestEncodedInputFiles verifies comparison across differently encoded
// inputs with the same logical content
func TestEncodedInputFiles(t *testing.T) {
	helper := NewTestHelper(t)
	defer helper.Cleanup()

	// Same text, one file carries a UTF-8 BOM and windows line endings
	helper.CreateFile1("SC_G1_20240101_V1_A01_Z.csv", "entête\nréférence\nvaleur\n")
	helper.CreateFile2("SC_G1_20240101_V1_A01_Z.csv", "\xEF\xBB\xBFentête\r\nvaleur\r\nréférence\r\n")

	report, err := helper.Engine(models.QuickNone).Run(context.Background(), helper.Operation(models.QuickNone))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Stats.PairsIdentical != 1 {
		t.Errorf("PairsIdentical = %d, want 1 (differences: %+v)", report.Stats.PairsIdentical, report.Results)
	}
}
