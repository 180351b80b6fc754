package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestParseLevel verifies level name parsing
func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want Level
	}{
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"unknown", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.name); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

// TestStreamLoggerText verifies text line rendering
func TestStreamLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStreamLogger(&buf, FormatText, InfoLevel)

	logger.Info(context.Background(), "pairs matched", Fields{"pairs": 3})

	line := buf.String()
	if !strings.Contains(line, "[INFO]") {
		t.Errorf("missing level marker: %s", line)
	}
	if !strings.Contains(line, "pairs matched") {
		t.Errorf("missing message: %s", line)
	}
	if !strings.Contains(line, "pairs=3") {
		t.Errorf("missing field: %s", line)
	}
}

// TestStreamLoggerJSON verifies JSON line rendering
func TestStreamLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStreamLogger(&buf, FormatJSON, InfoLevel)

	logger.Error(context.Background(), "comparison failed", errors.New("boom"), Fields{"file1": "a.csv"})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v\nline: %s", err, buf.String())
	}
	if entry["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", entry["level"])
	}
	if entry["message"] != "comparison failed" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v, want boom", entry["error"])
	}
	if entry["file1"] != "a.csv" {
		t.Errorf("file1 = %v, want a.csv", entry["file1"])
	}
}

// TestStreamLoggerLevelFiltering verifies messages below the threshold
// are dropped
func TestStreamLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStreamLogger(&buf, FormatText, WarnLevel)

	logger.Debug(context.Background(), "dropped", nil)
	logger.Info(context.Background(), "dropped", nil)
	logger.Warn(context.Background(), "kept", nil)

	output := buf.String()
	if strings.Contains(output, "dropped") {
		t.Errorf("sub-threshold message was written: %s", output)
	}
	if !strings.Contains(output, "kept") {
		t.Errorf("threshold message was not written: %s", output)
	}
}

// TestStreamLoggerWithFields verifies field inheritance
func TestStreamLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStreamLogger(&buf, FormatJSON, InfoLevel)

	child := logger.WithFields(Fields{"operation_id": "op-1"})
	child.Info(context.Background(), "step", Fields{"step": "match"})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	if entry["operation_id"] != "op-1" {
		t.Errorf("inherited field missing: %v", entry)
	}
	if entry["step"] != "match" {
		t.Errorf("call field missing: %v", entry)
	}
}

// TestFileLogger verifies file output
func TestFileLogger(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "logs", "paircomp.log")

	logger, err := NewFileLogger(FileLoggerConfig{
		Path:   path,
		Format: FormatText,
		Level:  InfoLevel,
	})
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	logger.Info(context.Background(), "run started", Fields{"dir1": "/a"})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "run started") {
		t.Errorf("log file missing message: %s", string(data))
	}
}

// TestFileLoggerRotation verifies size-based rotation keeps backups
func TestFileLoggerRotation(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "paircomp.log")

	logger, err := NewFileLogger(FileLoggerConfig{
		Path:       path,
		Format:     FormatText,
		Level:      InfoLevel,
		MaxSize:    64, // tiny threshold to force rotation
		MaxBackups: 2,
	})
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	for i := 0; i < 20; i++ {
		logger.Info(context.Background(), "a log message long enough to cross the rotation threshold", nil)
	}
	logger.Close()

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Errorf("expected backup file after rotation: %v", err)
	}
}

// TestNullLogger verifies the no-op logger is safe to use
func TestNullLogger(t *testing.T) {
	logger := NewNullLogger()

	ctx := context.Background()
	logger.Debug(ctx, "msg", nil)
	logger.Info(ctx, "msg", Fields{"k": "v"})
	logger.Warn(ctx, "msg", nil)
	logger.Error(ctx, "msg", errors.New("boom"), nil)
	logger.WithFields(Fields{"k": "v"}).Info(ctx, "msg", nil)

	if err := logger.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
