package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileLoggerConfig holds configuration for file logging
type FileLoggerConfig struct {
	// Path is the log file path
	Path string
	// Format is the output format (json or text)
	Format Format
	// Level is the minimum log level
	Level Level
	// MaxSize is the maximum size in bytes before rotation (0 = no rotation)
	MaxSize int64
	// MaxBackups is the maximum number of backup files to keep
	MaxBackups int
}

// FileLogger implements Logger with file output and size-based rotation
type FileLogger struct {
	config      FileLoggerConfig
	file        *os.File
	fields      Fields
	mu          *sync.Mutex
	currentSize *int64
}

// NewFileLogger creates a new file logger
func NewFileLogger(config FileLoggerConfig) (*FileLogger, error) {
	dir := filepath.Dir(config.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(config.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	size := info.Size()
	return &FileLogger{
		config:      config,
		file:        file,
		mu:          &sync.Mutex{},
		currentSize: &size,
	}, nil
}

// Debug logs a debug message
func (l *FileLogger) Debug(ctx context.Context, msg string, fields Fields) {
	if l.config.Level <= DebugLevel {
		l.log(DebugLevel, msg, nil, fields)
	}
}

// Info logs an info message
func (l *FileLogger) Info(ctx context.Context, msg string, fields Fields) {
	if l.config.Level <= InfoLevel {
		l.log(InfoLevel, msg, nil, fields)
	}
}

// Warn logs a warning message
func (l *FileLogger) Warn(ctx context.Context, msg string, fields Fields) {
	if l.config.Level <= WarnLevel {
		l.log(WarnLevel, msg, nil, fields)
	}
}

// Error logs an error message
func (l *FileLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	if l.config.Level <= ErrorLevel {
		l.log(ErrorLevel, msg, err, fields)
	}
}

// WithFields returns a logger with additional fields sharing the same
// underlying file
func (l *FileLogger) WithFields(fields Fields) Logger {
	return &FileLogger{
		config:      l.config,
		file:        l.file,
		fields:      mergeFields(l.fields, fields),
		mu:          l.mu,
		currentSize: l.currentSize,
	}
}

// Close flushes and closes the logger
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *FileLogger) log(level Level, msg string, err error, fields Fields) {
	line, fmtErr := formatEntry(l.config.Format, level, msg, err, mergeFields(l.fields, fields))
	if fmtErr != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.config.MaxSize > 0 && *l.currentSize >= l.config.MaxSize {
		l.rotate()
	}

	n, _ := l.file.Write(line)
	*l.currentSize += int64(n)
}

// rotate rotates the log file, shifting existing backups up by one
func (l *FileLogger) rotate() {
	if l.file == nil {
		return
	}

	l.file.Close()

	for i := l.config.MaxBackups - 1; i >= 1; i-- {
		oldPath := fmt.Sprintf("%s.%d", l.config.Path, i)
		newPath := fmt.Sprintf("%s.%d", l.config.Path, i+1)
		os.Rename(oldPath, newPath)
	}
	os.Rename(l.config.Path, l.config.Path+".1")

	if l.config.MaxBackups > 0 {
		os.Remove(fmt.Sprintf("%s.%d", l.config.Path, l.config.MaxBackups+1))
	}

	file, err := os.OpenFile(l.config.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return
	}

	l.file = file
	*l.currentSize = 0
}
