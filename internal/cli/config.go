package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/stockroom/internal/logging"
	"github.com/mesh-intelligence/stockroom/internal/paths"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend  = "backend"
	cfgKeyDataDir  = "data_dir"
	cfgKeyFile     = "file"
	cfgKeyLogLevel = "log_level"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# stockroom configuration

# Store backend: csv or sqlite
backend: csv

# Data directory (optional; overridable by --data-dir)
# data_dir:

# Product file name inside the data directory (default: products.csv,
# or products.db for the sqlite backend)
# file:

# Diagnostic log level: debug, info, warn, error
log_level: warn
`

// settings is the resolved configuration for one invocation.
type settings struct {
	configDir string
	config    types.Config
}

// dataPath returns the full path of the product file.
func (s settings) dataPath() string {
	return filepath.Join(s.config.DataDir, s.config.FileName())
}

// resolveSettings combines flags, config.yaml, environment and defaults.
// Flags win over config.yaml; directories follow the paths package rules.
func resolveSettings(opts *rootOptions) (settings, error) {
	configDir, err := paths.ResolveConfigDir(opts.configDir)
	if err != nil {
		return settings{}, fmt.Errorf("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return settings{}, err
	}

	dataDir, err := paths.ResolveDataDir(opts.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return settings{}, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend:  firstNonEmpty(opts.backend, v.GetString(cfgKeyBackend)),
		DataDir:  dataDir,
		File:     firstNonEmpty(opts.file, v.GetString(cfgKeyFile)),
		LogLevel: firstNonEmpty(opts.logLevel, v.GetString(cfgKeyLogLevel)),
	}
	if err := cfg.Validate(); err != nil {
		return settings{}, fmt.Errorf("backend %q: %w", cfg.Backend, err)
	}

	return settings{configDir: configDir, config: cfg}, nil
}

// loadConfig reads config.yaml from configDir using Viper. It creates the
// config directory and a default config.yaml on first run. A config.yaml
// that disappears in between is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendCSV)
	v.SetDefault(cfgKeyLogLevel, logging.DefaultLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in configDir.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
