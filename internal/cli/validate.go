package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/paircomp/internal/platform"
	"github.com/sdejongh/paircomp/pkg/config"
	"github.com/sdejongh/paircomp/pkg/models"
)

// validateCompareFlags validates the compare command flags and arguments
func validateCompareFlags(dir1, dir2 string) error {
	for _, dir := range []string{dir1, dir2} {
		if err := platform.ValidatePath(dir); err != nil {
			return err
		}
		info, err := os.Stat(dir)
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		} else if err != nil {
			return fmt.Errorf("failed to access directory: %w", err)
		} else if !info.IsDir() {
			return fmt.Errorf("path exists but is not a directory: %s", dir)
		}
	}

	// Validate paths are not identical
	abs1, err := filepath.Abs(dir1)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	abs2, err := filepath.Abs(dir2)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	if abs1 == abs2 {
		return fmt.Errorf("cannot compare a directory with itself: %s", abs1)
	}

	// Validate fast-path method
	if compareFlags.Quick != "" {
		validQuick := map[string]bool{
			"external": true,
			"binary":   true,
			"hash":     true,
			"none":     true,
		}
		if !validQuick[compareFlags.Quick] {
			return fmt.Errorf("invalid fast-path method: %s (valid: external, binary, hash, none)", compareFlags.Quick)
		}
	}

	// Validate report format
	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[compareFlags.ReportFormat] {
		return fmt.Errorf("invalid report format: %s (valid: human, json)", compareFlags.ReportFormat)
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) error {
	// Fast-path method
	if compareFlags.Quick != "" {
		cfg.Compare.Quick = models.QuickMethod(compareFlags.Quick)
	}

	// Parallel workers (default: 4)
	if compareFlags.Threads > 0 {
		cfg.Performance.MaxWorkers = compareFlags.Threads
	} else if cfg.Performance.MaxWorkers == 0 {
		cfg.Performance.MaxWorkers = 4
	}

	// Bandwidth limit
	if compareFlags.Bandwidth != "" {
		limit, err := parseBandwidth(compareFlags.Bandwidth)
		if err != nil {
			return err
		}
		cfg.Performance.BandwidthLimit = limit
	}

	// Exclude patterns
	if len(compareFlags.Exclude) > 0 {
		cfg.Exclude = compareFlags.Exclude
	}

	// Output format
	if compareFlags.Output != "" {
		cfg.Output.Format = compareFlags.Output
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	// Enable progress in verbose mode
	if globalFlags.Verbose {
		cfg.Output.Progress = true
	}

	return nil
}

// parseBandwidth parses a bandwidth value like "500K", "10M" or "1G"
// into bytes per second
func parseBandwidth(value string) (int64, error) {
	value = strings.TrimSpace(strings.ToUpper(value))
	if value == "" {
		return 0, nil
	}

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(value, "K"):
		multiplier = 1024
		value = strings.TrimSuffix(value, "K")
	case strings.HasSuffix(value, "M"):
		multiplier = 1024 * 1024
		value = strings.TrimSuffix(value, "M")
	case strings.HasSuffix(value, "G"):
		multiplier = 1024 * 1024 * 1024
		value = strings.TrimSuffix(value, "G")
	}

	number, err := strconv.ParseInt(value, 10, 64)
	if err != nil || number < 0 {
		return 0, fmt.Errorf("invalid bandwidth value: %s (use e.g. \"500K\", \"10M\", \"1G\")", value)
	}

	return number * multiplier, nil
}

// createCompareOperation creates a compare operation from configuration
func createCompareOperation(cfg *config.Config, dir1, dir2 string) (*models.CompareOperation, error) {
	operation := &models.CompareOperation{
		ID:              uuid.New().String(),
		Dir1:            platform.NormalizePath(dir1),
		Dir2:            platform.NormalizePath(dir2),
		QuickMethod:     cfg.Compare.Quick,
		ExcludePatterns: cfg.Exclude,
		MaxWorkers:      cfg.Performance.MaxWorkers,
		BufferSize:      cfg.Performance.BufferSize,
		BandwidthLimit:  cfg.Performance.BandwidthLimit,
		ReportPath:      compareFlags.Report,
		ReportFormat:    compareFlags.ReportFormat,
		CreatedAt:       time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}
