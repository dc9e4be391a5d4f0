// Package cli implements the stockroom command-line interface. The root
// command runs the interactive inventory session; init and version are the
// only subcommands.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/pkg/stockroom"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootOptions holds global flag values accessible to all subcommands.
type rootOptions struct {
	configDir string
	dataDir   string
	file      string
	backend   string
	logLevel  string
}

// NewRootCmd creates the top-level "stockroom" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:     "stockroom",
		Short:   "Interactive inventory manager backed by a flat file",
		Long:    "Stockroom loads product records from a data file, lets you view, add,\nupdate, delete, search, sort and filter them, and saves them on exit.",
		Version: stockroom.Version,
		Args:    cobra.NoArgs,
		// Do not print usage on errors returned by the session.
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data directory (default: $(CWD)/.stockroom-db)")
	root.PersistentFlags().StringVar(&opts.file, "file", "", "product file name inside the data directory")
	root.PersistentFlags().StringVar(&opts.backend, "backend", "", "store backend: csv or sqlite")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "diagnostic log level: debug, info, warn, error")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(opts))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitCode maps data and filesystem failures to exitSysError and
// everything else to exitUserError.
func exitCode(err error) int {
	var (
		ioErr    *types.IOError
		parseErr *types.ParseError
	)
	if errors.As(err, &ioErr) || errors.As(err, &parseErr) {
		return exitSysError
	}
	return exitUserError
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the stockroom version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "stockroom v%s\nmodule: %s\n", stockroom.Version, stockroom.ModulePath)
			return nil
		},
	}
}
