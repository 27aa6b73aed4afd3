package shared

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger returns a logger writing to stderr with timestamps
func SetupLogger(debug bool) *log.Logger {
	return SetupLoggerTo(os.Stderr, debug)
}

// SetupLoggerTo returns a logger writing to w
func SetupLoggerTo(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

// SetupStructuredLogger configures JSON output
func SetupStructuredLogger(debug bool) *log.Logger {
	logger := SetupLogger(debug)
	logger.SetFormatter(log.JSONFormatter)
	logger.SetTimeFormat(time.RFC3339Nano)
	return logger
}
