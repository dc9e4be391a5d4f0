// Package paths resolves where stockroom keeps its config.yaml and its
// product file.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user configuration subdirectory.
const appName = "stockroom"

// DefaultDataDirName is the CWD-relative data directory used when nothing
// else selects one.
const DefaultDataDirName = ".stockroom-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "STOCKROOM_CONFIG_DIR"
	EnvDataDir   = "STOCKROOM_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/stockroom (fallback ~/.config/stockroom)
// macOS:   ~/Library/Application Support/stockroom
// Windows: %APPDATA%/stockroom
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// ResolveConfigDir returns the configuration directory:
// flag > STOCKROOM_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the directory holding the product file:
// flag > config.yaml data_dir > STOCKROOM_DATA_DIR > $(CWD)/.stockroom-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, dir := range []string{flag, configValue, os.Getenv(EnvDataDir)} {
		if dir != "" {
			return filepath.Abs(dir)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
