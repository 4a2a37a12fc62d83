package logging

import (
	"log/slog"
	"os"
)

// InitStructured reconfigures the operational logger based on format settings.
// format: "text" (default) or "json" (Loki/ELK compatible)
// level: "debug", "info", "warn", "error"
func InitStructured(format, level string) {
	SetLevelFromString(level)

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler).With("component", component)
	opLogger.Store(logger)
}

// OpForHost returns the operational logger scoped to a single host.
func OpForHost(hostUID string) *slog.Logger {
	return Op().With("host_uid", hostUID)
}

// OpForServer returns the operational logger scoped to a single server.
func OpForServer(serverUID string) *slog.Logger {
	return Op().With("server_uid", serverUID)
}
