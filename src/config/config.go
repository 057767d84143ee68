package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// ConfigPathEnvVar points at an alternate .env file when none sits
	// next to the executable.
	ConfigPathEnvVar = "SCAN_OVERLAY"

	DefaultHotkey         = "Ctrl+Alt+Q"
	DefaultScanIntervalMS = 500
)

type Config struct {
	ResourceDir       string
	Hotkey            string
	EnableFileLogging bool
	ScanIntervalMS    int
	Display           int
	ShowSearchBar     bool
	ShowToolbar       bool
}

func Load() (*Config, error) {
	// Load configuration from sources in priority order:
	// 1) .env in the application (executable) directory
	// 2) If not found, use SCAN_OVERLAY env var as a path to a config file
	envPath := resolveEnvPath()
	if envPath != "" {
		_ = godotenv.Load(envPath)
	}

	cfg := &Config{
		ResourceDir:       resolveResourceDir(),
		Hotkey:            getEnvWithDefault("HOTKEY", DefaultHotkey),
		EnableFileLogging: boolEnv("ENABLE_FILE_LOGGING"),
		ScanIntervalMS:    nonNegativeIntEnv("SCAN_INTERVAL_MS", DefaultScanIntervalMS),
		Display:           nonNegativeIntEnv("DISPLAY_INDEX", 0),
		ShowSearchBar:     boolEnv("SHOW_SEARCH_BAR"),
		ShowToolbar:       boolEnv("SHOW_TOOLBAR"),
	}

	return cfg, nil
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}

	execDir := filepath.Dir(execPath)
	exeEnv := filepath.Join(execDir, ".env")
	if _, err := os.Stat(exeEnv); err == nil {
		return exeEnv
	}

	if alt := os.Getenv(ConfigPathEnvVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

// resolveResourceDir falls back to a resources directory next to the
// executable when the env var is unset.
func resolveResourceDir() string {
	if dir := strings.TrimSpace(os.Getenv("RESOURCE_DIR")); dir != "" {
		return dir
	}

	execPath, err := os.Executable()
	if err != nil {
		return "resources"
	}
	return filepath.Join(filepath.Dir(execPath), "resources")
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func boolEnv(key string) bool {
	return strings.ToLower(os.Getenv(key)) == "true"
}

func nonNegativeIntEnv(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return defaultValue
}
