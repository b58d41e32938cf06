package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nerrad567/pdusim/internal/infrastructure/config"
)

// serviceName tags every log line so aggregated output from the
// simulator and its clients stays attributable.
const serviceName = "pdusim"

// Logger wraps slog.Logger with the simulator's default fields and
// level handling. Safe for concurrent use.
type Logger struct {
	*slog.Logger
}

// New builds a Logger from the logging section of config.yaml.
//
// Format "text" renders human-readable lines for development; anything
// else falls back to JSON. Output "stderr" writes there; anything else
// goes to stdout. Every entry carries service and version fields.
//
// Parameters:
//   - cfg: Logging configuration
//   - version: Application version attached to each entry
//
// Returns:
//   - *Logger: Ready to use
func New(cfg config.LoggingConfig, version string) *Logger {
	var out io.Writer = os.Stdout
	if strings.ToLower(cfg.Output) == "stderr" {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		slog.String("service", serviceName),
		slog.String("version", version),
	})

	return &Logger{Logger: slog.New(handler)}
}

// parseLevel maps a config string onto a slog level. Unrecognised
// values fall back to info rather than failing startup.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a child logger carrying extra default attributes, e.g.
//
//	mqttLog := logger.With("component", "mqtt")
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Default is the JSON/info/stdout logger used during early startup,
// before configuration has been loaded.
func Default() *Logger {
	return New(config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: "stdout",
	}, "dev")
}
