package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sdejongh/paircomp/pkg/models"
)

func sampleReport() *models.CompareReport {
	return &models.CompareReport{
		OperationID: "op-1",
		Dir1:        "/data/run1",
		Dir2:        "/data/run2",
		StartTime:   time.Now().Add(-time.Second),
		EndTime:     time.Now(),
		Duration:    time.Second,
		Stats: models.Statistics{
			PairsFound:        3,
			PairsIdentical:    1,
			PairsDiffering:    1,
			PairsErrored:      1,
			LinesOnlyInFirst:  1,
			LinesOnlyInSecond: 2,
		},
		Results: []models.PairResult{
			{
				Pair: models.FilePair{
					Path1: "/data/run1/SC_G1_20240101_V1_A01_Z.csv",
					Path2: "/data/run2/SC_G1_20240101_V1_A01_Z.csv",
				},
			},
			{
				Pair: models.FilePair{
					Path1: "/data/run1/SC_G2_20240101_V1_A01_Z.csv",
					Path2: "/data/run2/SC_G2_20240101_V1_A01_Z.csv",
				},
				Difference: &models.FileDifference{
					OnlyInFirst:  []string{"alpha"},
					OnlyInSecond: []string{"bravo", "charlie"},
				},
			},
			{
				Pair: models.FilePair{
					Path1: "/data/run1/SC_G3_20240101_V1_A01_Z.csv",
					Path2: "/data/run2/SC_G3_20240101_V1_A01_Z.csv",
				},
				Error: "file not found",
			},
		},
		Status: models.StatusPartial,
	}
}

// TestWriteReportHuman verifies the human-readable report content
func TestWriteReportHuman(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "report.txt")

	written, err := WriteReport(sampleReport(), path, "human")
	if err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}
	if written != path {
		t.Errorf("written path = %s, want %s", written, path)
	}

	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"Compared directories: /data/run1 and /data/run2",
		"File pairs: 3",
		"Differences found:",
		"alpha",
		"bravo",
		"charlie",
		"Comparison error:",
		"file not found",
		"pairs with differences: 1",
		"pairs with errors: 1",
		"identical pairs: 1",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("report missing %q\nreport:\n%s", want, content)
		}
	}

	// Identical pairs are summarized, not listed
	if strings.Contains(content, "SC_G1_20240101_V1_A01_Z.csv") {
		t.Error("identical pair should not be listed in the report body")
	}
}

// TestWriteReportJSON verifies the JSON report parses back
func TestWriteReportJSON(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "report.json")

	written, err := WriteReport(sampleReport(), path, "json")
	if err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}

	var decoded models.CompareReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if decoded.Stats.PairsFound != 3 {
		t.Errorf("PairsFound = %d, want 3", decoded.Stats.PairsFound)
	}
	if decoded.Status != models.StatusPartial {
		t.Errorf("Status = %s, want %s", decoded.Status, models.StatusPartial)
	}
}

// TestWriteReportDefaultName verifies the timestamped default filename
func TestWriteReportDefaultName(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	defer os.Chdir(cwd)

	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}

	written, err := WriteReport(sampleReport(), "", "human")
	if err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	base := filepath.Base(written)
	if !strings.HasPrefix(base, "comparison_report_") || !strings.HasSuffix(base, ".txt") {
		t.Errorf("unexpected default report name: %s", base)
	}
	if _, err := os.Stat(written); err != nil {
		t.Errorf("report file was not created: %v", err)
	}
}

// TestWriteReportExtensionlessPath verifies the timestamp suffix for
// stem-only paths
func TestWriteReportExtensionlessPath(t *testing.T) {
	tempDir := t.TempDir()

	written, err := WriteReport(sampleReport(), filepath.Join(tempDir, "nightly"), "human")
	if err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	base := filepath.Base(written)
	if !strings.HasPrefix(base, "nightly_") || !strings.HasSuffix(base, ".txt") {
		t.Errorf("unexpected report name: %s", base)
	}
}

// TestShortPath verifies the two-segment path rendering
func TestShortPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/data/run1/file.csv", filepath.Join("run1", "file.csv")},
		{"file.csv", filepath.Join(".", "file.csv")},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ShortPath(tt.path); got != tt.want {
				t.Errorf("ShortPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// TestDefaultReportPath verifies the timestamp layout
func TestDefaultReportPath(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC)
	want := "comparison_report_20240115_103045.txt"
	if got := DefaultReportPath(now); got != want {
		t.Errorf("DefaultReportPath = %s, want %s", got, want)
	}
}
