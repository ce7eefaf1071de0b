package env

import (
	"fmt"
	"os"
	"slot_backend/internal/config"
)

const (
	logLevelEnvName  = "LOG_LEVEL"
	logFormatEnvName = "LOG_FORMAT"
)

type logConfig struct {
	level  string
	format string
}

func NewLogConfig() (config.LogConfig, error) {
	level := os.Getenv(logLevelEnvName)
	if len(level) == 0 {
		level = "info"
	}

	format := os.Getenv(logFormatEnvName)
	if len(format) == 0 {
		format = "json"
	}
	if format != "json" && format != "console" {
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	return &logConfig{level: level, format: format}, nil
}

func (l *logConfig) Level() string {
	return l.level
}

func (l *logConfig) Format() string {
	return l.format
}
