package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dshills/funcsearch/internal/extractor"
)

// Log format constants
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// EnvPrefix is prepended to every environment variable the settings read
const EnvPrefix = "FUNCSEARCH"

// LogSettings configuration for the stderr logger
type LogSettings struct {
	Level  string `mapstructure:"level"`  // debug, info, warn or error
	Format string `mapstructure:"format"` // LogFormatText or LogFormatJSON
}

// Settings application settings
type Settings struct {
	Dir           string      `mapstructure:"dir"`
	TopK          int         `mapstructure:"top_k"`
	Workers       int         `mapstructure:"workers"` // 0 means one per CPU
	IncludeTests  bool        `mapstructure:"include_tests"`
	IncludeVendor bool        `mapstructure:"include_vendor"`
	Exclude       []string    `mapstructure:"exclude"`
	Log           LogSettings `mapstructure:"log"`
	HistoryFile   string      `mapstructure:"history_file"`
	NoColor       bool        `mapstructure:"no_color"`
	DBPath        string      `mapstructure:"db_path"`
	CacheSize     int         `mapstructure:"cache_size"` // Indexed roots kept by the MCP server
}

// ExtractorConfig returns the scan configuration described by the settings
func (s *Settings) ExtractorConfig() *extractor.Config {
	return &extractor.Config{
		Workers:       s.Workers,
		IncludeTests:  s.IncludeTests,
		IncludeVendor: s.IncludeVendor,
		Exclude:       s.Exclude,
	}
}

// LoadSettings loads settings from environment variables and optional .env file
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > .env file > defaults.
// Flags missing from the set are ignored.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	// Default values
	v.SetDefault("dir", ".")
	v.SetDefault("top_k", 3)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("include_tests", true)
	v.SetDefault("include_vendor", false)
	v.SetDefault("exclude", []string{})
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", LogFormatText)
	v.SetDefault("history_file", "~/.funcsearch_history")
	v.SetDefault("no_color", false)
	v.SetDefault("db_path", "funcsearch.db")
	v.SetDefault("cache_size", 8)

	// Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Nested keys are not picked up by AutomaticEnv during Unmarshal
	_ = v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL")
	_ = v.BindEnv("log.format", EnvPrefix+"_LOG_FORMAT")

	if flags != nil {
		_ = v.BindPFlag("top_k", flags.Lookup("top-k"))
		_ = v.BindPFlag("workers", flags.Lookup("workers"))
		_ = v.BindPFlag("include_tests", flags.Lookup("include-tests"))
		_ = v.BindPFlag("include_vendor", flags.Lookup("include-vendor"))
		_ = v.BindPFlag("exclude", flags.Lookup("exclude"))
		_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
		_ = v.BindPFlag("log.format", flags.Lookup("log-format"))
		_ = v.BindPFlag("history_file", flags.Lookup("history-file"))
		_ = v.BindPFlag("no_color", flags.Lookup("no-color"))
		_ = v.BindPFlag("db_path", flags.Lookup("db"))
		_ = v.BindPFlag("cache_size", flags.Lookup("cache-size"))
	}

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if .env doesn't exist

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	// A comma-separated env var arrives as a single element
	if excludeEnv := os.Getenv(EnvPrefix + "_EXCLUDE"); excludeEnv != "" {
		if len(settings.Exclude) <= 1 {
			settings.Exclude = strings.Split(excludeEnv, ",")
		}
	}
	for i := range settings.Exclude {
		settings.Exclude[i] = strings.TrimSpace(settings.Exclude[i])
	}
	settings.Exclude = filterEmptyStrings(settings.Exclude)

	settings.Log.Level = strings.ToLower(strings.TrimSpace(settings.Log.Level))
	settings.Log.Format = strings.ToLower(strings.TrimSpace(settings.Log.Format))
	settings.HistoryFile = expandHomeDir(settings.HistoryFile)

	return &settings, nil
}

// expandHomeDir expands ~ to the user's home directory
func expandHomeDir(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

// filterEmptyStrings removes empty strings from a slice
func filterEmptyStrings(s []string) []string {
	var result []string
	for _, str := range s {
		if str != "" {
			result = append(result, str)
		}
	}
	return result
}

// ValidateSettings rejects settings no command can run with
func ValidateSettings(s *Settings) error {
	if s.TopK < 1 {
		return fmt.Errorf("top-k must be at least 1, got %d", s.TopK)
	}

	if s.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", s.Workers)
	}

	if s.CacheSize < 1 {
		return fmt.Errorf("cache-size must be at least 1, got %d", s.CacheSize)
	}

	if _, err := ParseLevel(s.Log.Level); err != nil {
		return err
	}

	switch s.Log.Format {
	case LogFormatText, LogFormatJSON:
		// valid
	default:
		return errors.New("log-format must be 'text' or 'json', got: " + s.Log.Format)
	}

	if err := extractor.ValidatePatterns(s.Exclude); err != nil {
		return err
	}

	return nil
}
