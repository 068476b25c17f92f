package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger with application-specific methods
type Logger struct {
	zerolog.Logger
}

// New creates a new Logger instance. Events go to stdout and, when file is
// non-empty, are appended to the process log file as well. Empty file
// disables the file output.
func New(level string, format string, file string) *Logger {
	// Set global log level
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var console io.Writer = os.Stdout
	if format == "text" || format == "console" {
		// Human-readable output for interactive runs
		console = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	writer := console
	var fileErr error
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fileErr = err
		} else {
			writer = zerolog.MultiLevelWriter(console, f)
		}
	}

	logger := zerolog.New(writer).With().Timestamp().Logger()
	if fileErr != nil {
		// Keep running on stdout only; the file is a convenience, not a
		// requirement.
		logger.Warn().Err(fileErr).Str("file", file).Msg("process log file unavailable")
	}

	return &Logger{Logger: logger}
}

// WithComponent returns a new logger with the component name attached
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.With().Str("component", component).Logger(),
	}
}
