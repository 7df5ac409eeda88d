package billomat

import (
	"io"
	"sort"

	"github.com/hashicorp/go-hclog"
)

// HCLogger adapts a hashicorp/go-hclog logger to Logger.
type HCLogger struct {
	logger hclog.Logger
}

// NewHCLogger wraps an existing hclog logger.
func NewHCLogger(logger hclog.Logger) *HCLogger {
	return &HCLogger{logger: logger}
}

// NewDefaultLogger returns a named hclog logger writing to output at the given
// level ("debug", "info", ...). Unknown levels fall back to info.
func NewDefaultLogger(output io.Writer, level string) *HCLogger {
	parsed := hclog.LevelFromString(level)
	if parsed == hclog.NoLevel {
		parsed = hclog.Info
	}

	return NewHCLogger(hclog.New(&hclog.LoggerOptions{
		Name:   "billomat",
		Level:  parsed,
		Output: output,
	}))
}

// Debug implements Logger.
func (l *HCLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, flatten(fields)...)
}

// Info implements Logger.
func (l *HCLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, flatten(fields)...)
}

// Warn implements Logger.
func (l *HCLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, flatten(fields)...)
}

// Error implements Logger.
func (l *HCLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, flatten(fields)...)
}

// flatten turns a field map into hclog key/value pairs in stable key order.
func flatten(fields map[string]interface{}) []interface{} {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	args := make([]interface{}, 0, len(fields)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}

	return args
}

// NopLogger discards everything.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, map[string]interface{}) {}

// Info implements Logger.
func (NopLogger) Info(string, map[string]interface{}) {}

// Warn implements Logger.
func (NopLogger) Warn(string, map[string]interface{}) {}

// Error implements Logger.
func (NopLogger) Error(string, map[string]interface{}) {}
