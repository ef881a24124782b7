package app

import (
	"strings"

	"github.com/cinetrack/cinetrack/pkg/logger"
)

// ConfigureLogging wires the global logger to the configured server level.
// An empty or whitespace level means info.
func ConfigureLogging(level string) error {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = "info"
	}
	return logger.Init(level)
}
