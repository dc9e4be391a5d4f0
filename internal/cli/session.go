package cli

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/catalog"
	"github.com/mesh-intelligence/stockroom/internal/csvstore"
	"github.com/mesh-intelligence/stockroom/internal/logging"
	"github.com/mesh-intelligence/stockroom/internal/session"
	"github.com/mesh-intelligence/stockroom/internal/sqlite"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// runSession loads the product file, runs the interactive menu on the
// command's stdin and stdout, and saves on exit.
func runSession(cmd *cobra.Command, opts *rootOptions) error {
	s, err := resolveSettings(opts)
	if err != nil {
		return err
	}

	logCfg := logging.ConfigFromEnv(s.config.LogLevel)
	logCfg.Output = cmd.ErrOrStderr()
	log := logging.New(logCfg)

	store := newStore(s.config.Backend, log)
	if err := store.EnsureDirectory(s.config.DataDir); err != nil {
		return fmt.Errorf("prepare data dir: %w", err)
	}

	path := s.dataPath()
	records, err := store.Load(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("load failed")
		return fmt.Errorf("load products: %w", err)
	}

	sess := session.New(catalog.New(records), store, path, cmd.InOrStdin(), cmd.OutOrStdout(), log)
	if err := sess.Run(); err != nil {
		if errors.Is(err, session.ErrInputClosed) {
			log.Warn().Str("path", path).Msg("input closed, changes discarded")
		}
		return err
	}
	return nil
}

// newStore returns the Store for a validated backend name.
func newStore(backend string, log zerolog.Logger) types.Store {
	if backend == types.BackendSQLite {
		return sqlite.NewStore(log.With().Str("store", backend).Logger())
	}
	return csvstore.New(log.With().Str("store", types.BackendCSV).Logger())
}
