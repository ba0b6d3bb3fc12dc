package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/natefinch/lumberjack"
)

// newLogger builds the process logger: text on console, or JSON into a
// rotating file. The returned closer releases the file and must be called
// once logging is done.
func newLogger(s LogSettings, console io.Writer) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: parseLevel(s.Level)}

	switch s.Type {
	case LogTypeConsole:
		return slog.New(slog.NewTextHandler(console, opts)), nopCloser{}, nil
	case LogTypeFile:
		if s.FilePath == "" {
			return nil, nil, fmt.Errorf("file path required for file logger")
		}
		writer := &lumberjack.Logger{
			Filename:   s.FilePath,
			MaxSize:    s.MaxSize,
			MaxBackups: s.MaxBackups,
			MaxAge:     s.MaxAge,
			Compress:   true,
		}
		return slog.New(slog.NewJSONHandler(writer, opts)), writer, nil
	default:
		return nil, nil, fmt.Errorf("unsupported log type: %s", s.Type)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func parseLevel(level string) slog.Level {
	switch level {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
