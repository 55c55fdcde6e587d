package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/a1s/gridview/internal/config"
	"github.com/a1s/gridview/internal/config/data"
)

// newLogger returns a text logger writing to the log file. The UI owns the
// terminal, so only headless runs without a log file write to stderr.
func newLogger(flags *data.Flags, headless bool) (*slog.Logger, func(), error) {
	var level slog.Level
	lvl := config.DefaultLogLevel
	if config.IsStringSet(flags.LogLevel) {
		lvl = *flags.LogLevel
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(lvl))); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q", lvl)
	}

	var (
		w       io.Writer = io.Discard
		closeFn           = func() {}
	)
	path := config.AppLogFile
	switch {
	case config.IsStringSet(flags.LogFile):
		path = *flags.LogFile
	case headless:
		w, path = os.Stderr, ""
	}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closeFn = f, func() { _ = f.Close() }
	}

	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return l.With("app", config.AppName), closeFn, nil
}
