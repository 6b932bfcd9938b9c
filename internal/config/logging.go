package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// ParseLevel converts a level name such as "warn" into a slog.Level
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", name)
	}
	return level, nil
}

// NewLogger builds the logger described by the settings, writing to w.
// Callers pass stderr: stdout belongs to the shell and the MCP protocol.
func NewLogger(w io.Writer, s LogSettings) (*slog.Logger, error) {
	level, err := ParseLevel(s.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch s.Format {
	case LogFormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	case LogFormatText, "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format %q", s.Format)
	}

	return slog.New(handler), nil
}

// LogWithLogger logs the resolved settings using the provided logger.
// Scan options are only logged when they differ from the defaults.
func LogWithLogger(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logger.DebugContext(ctx, "Config: dir", "value", s.Dir)
	logger.DebugContext(ctx, "Config: top_k", "value", s.TopK)
	logger.DebugContext(ctx, "Config: workers", "value", s.Workers)

	if !s.IncludeTests {
		logger.DebugContext(ctx, "Config: include_tests", "value", false)
	}
	if s.IncludeVendor {
		logger.DebugContext(ctx, "Config: include_vendor", "value", true)
	}
	if len(s.Exclude) > 0 {
		logger.DebugContext(ctx, "Config: exclude", "value", s.Exclude)
	}

	logger.DebugContext(ctx, "Config: log", "value", LogSettingsLogValue(s.Log))
}

// LogSettingsLogValue returns a slog.Value for LogSettings
func LogSettingsLogValue(s LogSettings) slog.Value {
	return slog.GroupValue(
		slog.String("level", s.Level),
		slog.String("format", s.Format),
	)
}

// SettingsLogValue returns a slog.Value for Settings
func SettingsLogValue(s Settings) slog.Value {
	return slog.GroupValue(
		slog.String("dir", s.Dir),
		slog.Int("top_k", s.TopK),
		slog.Int("workers", s.Workers),
		slog.Bool("include_tests", s.IncludeTests),
		slog.Bool("include_vendor", s.IncludeVendor),
		slog.Any("exclude", s.Exclude),
		slog.Any("log", LogSettingsLogValue(s.Log)),
		slog.String("db_path", s.DBPath),
		slog.Int("cache_size", s.CacheSize),
	)
}
