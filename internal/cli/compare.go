package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/paircomp/pkg/config"
	"github.com/sdejongh/paircomp/pkg/diff"
	"github.com/sdejongh/paircomp/pkg/loader"
	"github.com/sdejongh/paircomp/pkg/logging"
	"github.com/sdejongh/paircomp/pkg/match"
	"github.com/sdejongh/paircomp/pkg/output"
	"github.com/sdejongh/paircomp/pkg/ratelimit"
	"github.com/sdejongh/paircomp/pkg/runner"
)

// CompareFlags holds compare command flags
type CompareFlags struct {
	Threads      int
	Quick        string
	Exclude      []string
	Bandwidth    string
	Output       string
	Report       string
	ReportFormat string
	NoReport     bool
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var compareFlags CompareFlags

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare DIR1 DIR2",
		Short: "Compare paired files between two directories",
		Long: `Compare files between two directories. Files are paired by naming
convention, each pair is compared line by line ignoring the header line
and line order, and a difference report is written at the end.`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}

	cmd.Flags().IntVarP(&compareFlags.Threads, "threads", "t", 0, "number of parallel workers (default: 4)")
	cmd.Flags().StringVar(&compareFlags.Quick, "quick", "", "fast-path method: external, binary, hash, none")
	cmd.Flags().StringSliceVar(&compareFlags.Exclude, "exclude", []string{}, "glob patterns to exclude")
	cmd.Flags().StringVarP(&compareFlags.Bandwidth, "bandwidth", "b", "", "read bandwidth limit (e.g., \"10M\", \"1G\")")
	cmd.Flags().StringVarP(&compareFlags.Output, "output", "o", "human", "output format: human, json")
	cmd.Flags().StringVar(&compareFlags.Report, "report", "", "report file path (default: comparison_report_<timestamp>.txt)")
	cmd.Flags().StringVar(&compareFlags.ReportFormat, "report-format", "human", "report file format: human, json")
	cmd.Flags().BoolVar(&compareFlags.NoReport, "no-report", false, "don't write a report file")

	// Logging flags
	cmd.Flags().StringVar(&compareFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&compareFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&compareFlags.LogLevel, "log-level", "warn", "log level: debug, info, warn, error")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dir1, dir2 := args[0], args[1]

	// Validate flags
	if err := validateCompareFlags(dir1, dir2); err != nil {
		return err
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	if err := applyFlagsToConfig(cfg); err != nil {
		return err
	}

	// Create compare operation
	operation, err := createCompareOperation(cfg, dir1, dir2)
	if err != nil {
		return fmt.Errorf("failed to create compare operation: %w", err)
	}

	// Create logger
	logger, err := createLogger(cmd, cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// Create line loader tuned from configuration
	ld := loader.New(logger)
	ld.MaxMemoryBytes = cfg.Compare.MaxMemoryFileSize
	ld.ExternalSortLines = cfg.Compare.ExternalSortLines

	// Create fast-path comparator
	quick := diff.NewQuick(operation.QuickMethod, cfg.Performance.BufferSize)

	// Apply bandwidth limiting to fast-path reads if configured
	if operation.BandwidthLimit > 0 {
		limiter := ratelimit.NewLimiter(operation.BandwidthLimit)
		if limited, ok := quick.(interface{ SetReaderWrapper(diff.ReaderWrapper) }); ok {
			limited.SetReaderWrapper(func(r io.Reader) io.Reader {
				return ratelimit.NewReader(r, limiter)
			})
		}
	}

	// Create output formatter
	var formatter output.Formatter
	switch cfg.Output.Format {
	case "json":
		formatter = output.NewJSONFormatter()
	default:
		if cfg.Output.Progress && !cfg.Output.Quiet {
			formatter = output.NewProgressFormatter()
		} else {
			formatter = output.NewHumanFormatter(cfg.Output.Quiet)
		}
	}

	// Create engine
	matcher := match.NewMatcher(operation.ExcludePatterns, logger)
	differ := diff.New(quick, ld, logger)
	engine := runner.NewEngine(matcher, differ, formatter, logger)

	// Run comparison
	report, err := engine.Run(ctx, operation)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	// Write report file unless disabled
	if !compareFlags.NoReport {
		path, err := output.WriteReport(report, operation.ReportPath, operation.ReportFormat)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		if !cfg.Output.Quiet && cfg.Output.Format != "json" {
			fmt.Printf("Report written to: %s\n", path)
		}
	}

	// Exit with appropriate code
	os.Exit(report.Status.ExitCode())
	return nil
}

// createLogger creates a logger from the logging config section, with
// command-line flags taking precedence. An empty file path with logging
// enabled means stderr; passing --log-file enables logging regardless
// of the config.
func createLogger(cmd *cobra.Command, cfg *config.Config) (logging.Logger, error) {
	logFile := cfg.Logging.File
	if cmd.Flags().Changed("log-file") {
		logFile = compareFlags.LogFile
	}
	logFormat := cfg.Logging.Format
	if cmd.Flags().Changed("log-format") {
		logFormat = compareFlags.LogFormat
	}
	logLevel := cfg.Logging.Level
	if cmd.Flags().Changed("log-level") {
		logLevel = compareFlags.LogLevel
	}

	if !cfg.Logging.Enabled && logFile == "" {
		return logging.NewNullLogger(), nil
	}

	// Parse log format
	var format logging.Format
	switch logFormat {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}
	level := logging.ParseLevel(logLevel)

	// No file: log to stderr
	if logFile == "" {
		return logging.NewStreamLogger(os.Stderr, format, level), nil
	}

	// Create file logger
	fileConfig := logging.FileLoggerConfig{
		Path:       logFile,
		Format:     format,
		Level:      level,
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	}

	return logging.NewFileLogger(fileConfig)
}
