package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	zl   zerolog.Logger
	file *os.File
}

// Init opens (or creates) the log file and wires a plain-text file writer
// together with a colored console writer.
func (l *Logger) Init(logPath string, console io.Writer) error {
	if logPath == "" {
		return fmt.Errorf("log path is empty")
	}

	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: file, NoColor: true, TimeFormat: time.DateTime},
	}
	if console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: console, TimeFormat: time.TimeOnly})
	}

	l.zl = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	l.file = file
	return nil
}

// New returns a logger writing to w only. No file is owned.
func New(w io.Writer) *Logger {
	return &Logger{zl: zerolog.New(w).With().Timestamp().Logger()}
}

// NewConsole returns a logger printing human-readable lines to w
func NewConsole(w io.Writer) *Logger {
	return New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly})
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) With(key, value string) LoggerInterface {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

func sprint(v []any) string {
	return strings.TrimSuffix(fmt.Sprintln(v...), "\n")
}

func (l *Logger) Info(v ...any) {
	l.zl.Info().Msg(sprint(v))
}

func (l *Logger) Infof(format string, v ...any) {
	l.zl.Info().Msgf(format, v...)
}

func (l *Logger) Warn(v ...any) {
	l.zl.Warn().Msg(sprint(v))
}

func (l *Logger) Warnf(format string, v ...any) {
	l.zl.Warn().Msgf(format, v...)
}

func (l *Logger) Error(v ...any) {
	l.zl.Error().Msg(sprint(v))
}

func (l *Logger) Errorf(format string, v ...any) {
	l.zl.Error().Msgf(format, v...)
}

func (l *Logger) Debug(v ...any) {
	l.zl.Debug().Msg(sprint(v))
}

func (l *Logger) Debugf(format string, v ...any) {
	l.zl.Debug().Msgf(format, v...)
}
