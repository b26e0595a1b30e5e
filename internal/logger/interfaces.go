package logger

import "os"

// LoggerInterface defines the interface for logging
type LoggerInterface interface {
	Info(v ...any)
	Infof(format string, v ...any)
	Warn(v ...any)
	Warnf(format string, v ...any)
	Error(v ...any)
	Errorf(format string, v ...any)
	Debug(v ...any)
	Debugf(format string, v ...any)
	// With returns a logger that attaches key=value to every entry
	With(key, value string) LoggerInterface
	Close() error
}

// NewLogger creates a logger that appends to logPath and mirrors to stdout
func NewLogger(logPath string) (LoggerInterface, error) {
	logger := &Logger{}
	if err := logger.Init(logPath, os.Stdout); err != nil {
		return nil, err
	}
	return logger, nil
}
