package logging

import (
	"log/slog"
	"os"
)

// Setup sets slog's default logger to JSON output at the given level, with a
// service attribute on every record.
func Setup(service string, level slog.Level) {
	logger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}),
	).With("service", service)

	slog.SetDefault(logger)
}
