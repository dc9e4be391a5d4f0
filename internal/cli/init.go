package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/stockroom/internal/paths"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// configFile holds the structure written to config.yaml by init.
type configFile struct {
	Backend  string `yaml:"backend"`
	DataDir  string `yaml:"data_dir,omitempty"`
	File     string `yaml:"file,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
}

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize stockroom configuration and storage",
		Long:  "Create the configuration and data directories, write config.yaml if missing,\nand create an empty product file if none exists.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}
}

func runInit(cmd *cobra.Command, opts *rootOptions) error {
	configDir, err := paths.ResolveConfigDir(opts.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return types.NewIOError("mkdir", configDir, err)
	}

	configPath := filepath.Join(configDir, configFileExt)
	if err := writeConfigIfMissing(configPath, opts); err != nil {
		return types.NewIOError("write", configPath, err)
	}

	s, err := resolveSettings(opts)
	if err != nil {
		return err
	}

	store := newStore(s.config.Backend, zerolog.Nop())
	if err := store.EnsureDirectory(s.config.DataDir); err != nil {
		return err
	}

	path := s.dataPath()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := store.Save(nil, path); err != nil {
			return err
		}
	} else if err != nil {
		return types.NewIOError("read", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Stockroom initialized: %s\n", path)
	return nil
}

// writeConfigIfMissing creates config.yaml from the given flags if the file
// does not exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path string, opts *rootOptions) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := configFile{
		Backend:  firstNonEmpty(opts.backend, types.BackendCSV),
		DataDir:  opts.dataDir,
		File:     opts.file,
		LogLevel: opts.logLevel,
	}
	if cfg.DataDir != "" {
		abs, err := filepath.Abs(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		cfg.DataDir = abs
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
