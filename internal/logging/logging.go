// Package logging builds the logrus logger shared by all commands.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Options selects the level and destination of the log.
type Options struct {
	// Level is a logrus level name. Empty means "info".
	Level string
	// File, when set, receives JSON records instead of text on Out.
	File string
	// Out is the text destination, stderr when nil.
	Out io.Writer
}

// New returns a configured logger and a function releasing its file, if any.
func New(opts Options) (*logrus.Logger, func() error, error) {
	logger := logrus.New()

	level := logrus.InfoLevel

	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing log level: %w", err)
		}

		level = parsed
	}

	logger.SetLevel(level)

	if opts.File == "" {
		out := opts.Out
		if out == nil {
			out = os.Stderr
		}

		logger.SetOutput(out)
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

		return logger, func() error { return nil }, nil
	}

	file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // user-supplied log path
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	logger.SetOutput(file)
	logger.SetFormatter(&logrus.JSONFormatter{})

	return logger, file.Close, nil
}

// Discard returns a logger that drops every record.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return logger
}
