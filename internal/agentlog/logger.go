// Package agentlog configures the agent's structured logger.
//
// It replaces the log.Printf-with-bracketed-tags convention of the
// teacher agent with zerolog, keeping the same per-component tagging
// (as a "component" field instead of a "[component]" prefix) and
// adding file rotation via lumberjack for the Logging.file_path config.
package agentlog

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger, mirroring the Logging config block.
type Options struct {
	Level         string // trace,debug,info,warn,error,fatal
	FilePath      string
	ConsoleOutput bool
	MaxFileSizeMB int
	MaxFiles      int
}

// New builds a zerolog.Logger per Options. Console and file outputs may
// both be active; if neither is requested, logs go to stderr so nothing
// is silently dropped.
func New(opts Options) zerolog.Logger {
	level := parseLevel(opts.Level)

	var writers []io.Writer
	if opts.ConsoleOutput || opts.FilePath == "" {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
	if opts.FilePath != "" {
		maxSize := opts.MaxFileSizeMB
		if maxSize <= 0 {
			maxSize = 100
		}
		maxFiles := opts.MaxFiles
		if maxFiles <= 0 {
			maxFiles = 5
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    maxSize,
			MaxBackups: maxFiles,
			Compress:   true,
		})
	}

	var out io.Writer
	switch len(writers) {
	case 0:
		out = os.Stderr
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Component returns a child logger tagged with the given component
// name, the structured replacement for the teacher's "[component]"
// log prefixes.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
