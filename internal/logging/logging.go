// Package logging configures the process-wide structured logger.
//
// Logs are written to stderr as JSON lines. Stdout is reserved for the MCP
// stdio transport and must never receive log output.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

var levelVar = new(slog.LevelVar)

// Setup builds a JSON slog logger at the given level ("debug", "info",
// "warn", "error") and installs it as the default. An empty level means
// "info".
func Setup(level string) (*slog.Logger, error) {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if normalized == "" {
		normalized = "info"
	}
	if err := levelVar.UnmarshalText([]byte(normalized)); err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelVar,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

// FromEnv calls Setup with the COGITO_LOG_LEVEL environment variable.
func FromEnv() (*slog.Logger, error) {
	return Setup(os.Getenv("COGITO_LOG_LEVEL"))
}
