package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Field is a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// Logger wraps logrus with the configuration used across the tool
type Logger struct {
	mu     sync.RWMutex
	logger *logrus.Logger
}

var (
	instance *Logger
	once     sync.Once
)

// GetLogger returns the global logger instance, initializing it if necessary
func GetLogger() *Logger {
	once.Do(initDefaultLogger)
	return instance
}

func initDefaultLogger() {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&CLIFormatter{})

	instance = &Logger{logger: l}
}

// Setup configures the global logger from CLI flags
func Setup(verbose, jsonLogs, quiet bool) {
	l := GetLogger()

	level := logrus.InfoLevel
	formatter := &CLIFormatter{}
	if verbose {
		level = logrus.DebugLevel
		formatter.ShowTimestamp = true
	}
	if quiet {
		level = logrus.ErrorLevel
	}

	if jsonLogs {
		l.Configure(os.Stderr, level, &logrus.JSONFormatter{})
		return
	}
	l.Configure(os.Stderr, level, formatter)
}

// Configure updates the logger output, level and formatter
func (l *Logger) Configure(output io.Writer, level logrus.Level, formatter logrus.Formatter) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logger.SetOutput(output)
	l.logger.SetLevel(level)
	l.logger.SetFormatter(formatter)
}

func (l *Logger) entry(fields ...Field) *logrus.Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	logFields := make(logrus.Fields, len(fields))
	for _, f := range fields {
		logFields[f.Key] = f.Value
	}
	return l.logger.WithFields(logFields)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...Field) {
	l.entry(fields...).Debug(msg)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.entry().Debugf(format, args...)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...Field) {
	l.entry(fields...).Info(msg)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.entry().Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...Field) {
	l.entry(fields...).Warn(msg)
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.entry().Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...Field) {
	l.entry(fields...).Error(msg)
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.entry().Errorf(format, args...)
}

// GetInternalLogger returns the underlying logrus logger (use with caution)
func (l *Logger) GetInternalLogger() *logrus.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.logger
}
