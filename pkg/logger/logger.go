package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/snapshare/cli/pkg/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger *log.Logger

// Init initializes the logger. Output goes to the rotated log file from
// config; stderr is used when no file is configured.
func Init(verbose bool) {
	level, err := log.ParseLevel(config.GetString("log.level"))
	if err != nil {
		level = log.InfoLevel
	}
	if verbose {
		level = log.DebugLevel
	}

	var w io.Writer = os.Stderr
	if logFile := config.GetString("log.file"); logFile != "" {
		w = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    config.GetInt("log.max_size_mb"),
			MaxBackups: config.GetInt("log.max_backups"),
		}
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
}

// SetOutput swaps the log destination, keeping the current level
func SetOutput(w io.Writer) {
	level := log.InfoLevel
	if logger != nil {
		level = logger.GetLevel()
	}
	logger = log.NewWithOptions(w, log.Options{Level: level})
}

// Debug logs a debug message
func Debug(msg string, args ...interface{}) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

// Info logs an info message
func Info(msg string, args ...interface{}) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

// Warn logs a warning message
func Warn(msg string, args ...interface{}) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// Error logs an error message
func Error(msg string, args ...interface{}) {
	if logger != nil {
		logger.Error(msg, args...)
	}
}

// GetLogger returns the logger instance
func GetLogger() *log.Logger {
	return logger
}
