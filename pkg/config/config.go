package config

import (
	"github.com/sdejongh/paircomp/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Compare     CompareConfig     `yaml:"compare"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
	Exclude     []string          `yaml:"exclude"`
}

// CompareConfig holds comparison-related settings
type CompareConfig struct {
	Quick             models.QuickMethod `yaml:"quick"`                // Fast-path method before line comparison
	MaxMemoryFileSize int64              `yaml:"max_memory_file_size"` // Files above this size are streamed
	ExternalSortLines int                `yaml:"external_sort_lines"`  // Line count above which external sort is used
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	MaxWorkers     int   `yaml:"max_workers"`
	BufferSize     int   `yaml:"buffer_size"`
	BandwidthLimit int64 `yaml:"bandwidth_limit"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show progress bars
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = stderr)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Compare: CompareConfig{
			Quick:             models.QuickExternal,
			MaxMemoryFileSize: 100 * 1024 * 1024,
			ExternalSortLines: 100_000,
		},
		Performance: PerformanceConfig{
			MaxWorkers:     4,
			BufferSize:     65536,
			BandwidthLimit: 0,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Format:  "text",
			Level:   "warn",
			File:    "",
		},
		Exclude: []string{
			"*.tmp",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validQuick := map[models.QuickMethod]bool{
		models.QuickExternal: true,
		models.QuickBinary:   true,
		models.QuickHash:     true,
		models.QuickNone:     true,
	}
	if !validQuick[c.Compare.Quick] {
		return &models.ValidationError{
			Field:   "compare.quick",
			Message: "must be 'external', 'binary', 'hash', or 'none'",
		}
	}

	if c.Compare.MaxMemoryFileSize < 1024 {
		return &models.ValidationError{
			Field:   "compare.max_memory_file_size",
			Message: "must be at least 1024 bytes",
		}
	}

	if c.Compare.ExternalSortLines < 1 {
		return &models.ValidationError{
			Field:   "compare.external_sort_lines",
			Message: "must be at least 1",
		}
	}

	if c.Performance.MaxWorkers < 1 {
		return &models.ValidationError{
			Field:   "performance.max_workers",
			Message: "must be at least 1",
		}
	}

	if c.Performance.BufferSize < 1024 {
		return &models.ValidationError{
			Field:   "performance.buffer_size",
			Message: "must be at least 1024 bytes",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
