package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/secmon-lab/relpack/pkg/domain/types"
)

// DefaultOutput is standard error, also the --log-output default
const DefaultOutput = "-"

var (
	mu            sync.Mutex
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	logFile       *os.File
)

func init() {
	_ = Configure("text", "info", DefaultOutput)
}

// Default returns the default logger
func Default() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return defaultLogger
}

// Configure replaces the default logger. logOutput is "-" or "stderr" for
// standard error, "stdout", or a file path which is truncated. A file opened
// by an earlier call is closed.
func Configure(logFormat, logLevel, logOutput string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return goerr.Wrap(types.ErrInvalidOption, "invalid log level, should be debug, info, warn or error",
			goerr.V("value", logLevel), goerr.T(types.ErrTagConfiguration))
	}

	w, fd, err := openOutput(logOutput)
	if err != nil {
		return err
	}

	handler, err := newHandler(logFormat, level, w, fd == nil)
	if err != nil {
		if fd != nil {
			_ = fd.Close()
		}
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = fd
	defaultLogger = slog.New(handler)

	return nil
}

func openOutput(logOutput string) (io.Writer, *os.File, error) {
	switch logOutput {
	case "", "-", "stderr":
		return os.Stderr, nil, nil
	case "stdout":
		return os.Stdout, nil, nil
	}

	fd, err := os.Create(filepath.Clean(logOutput))
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to open log file",
			goerr.V("path", logOutput), goerr.T(types.ErrTagConfiguration))
	}
	return fd, fd, nil
}

func newHandler(logFormat string, level slog.Level, w io.Writer, console bool) (slog.Handler, error) {
	filter := masq.New(
		masq.WithTag("secret"),
		masq.WithType[types.GitHubToken](masq.MaskWithSymbol('*', 16)),
	)

	switch logFormat {
	case "text":
		options := []clog.Option{
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithColorMap(&clog.ColorMap{
				Level: map[slog.Level]*color.Color{
					slog.LevelDebug: color.New(color.FgGreen),
					slog.LevelInfo:  color.New(color.FgCyan),
					slog.LevelWarn:  color.New(color.FgYellow, color.Bold),
					slog.LevelError: color.New(color.FgRed, color.Bold),
				},
				LevelDefault: color.New(color.FgBlue),
			}),
			clog.WithAttrHook(clog.GoerrHook),
			clog.WithReplaceAttr(filter),
		}
		if !console {
			// No escape codes in log files
			options = append(options, clog.WithColor(false))
		}
		return clog.New(options...), nil

	case "json":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   true,
			Level:       level,
			ReplaceAttr: filter,
		}), nil
	}

	return nil, goerr.Wrap(types.ErrInvalidOption, "invalid log format, should be 'json' or 'text'",
		goerr.V("value", logFormat), goerr.T(types.ErrTagConfiguration))
}
