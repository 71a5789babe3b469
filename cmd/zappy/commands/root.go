// Package commands implements the zappy command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/zappy/am"
	"github.com/teranos/zappy/api"
	"github.com/teranos/zappy/errors"
	"github.com/teranos/zappy/internal/httpclient"
	"github.com/teranos/zappy/logger"
)

// NewRootCmd builds the zappy command tree.
// A fresh tree per call keeps flag state from leaking between test runs.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zappy",
		Short: "Interface with zappy.sh API from the terminal",
		Long: `zappy - Interface with the zappy.sh URL shortener from the terminal.

Available commands:
  create   - Create an alias for a URL
  requests - Show the requests made to an alias (needs ZAPPY_API_KEY)
  am       - Manage zappy configuration ("I am")
  version  - Show version information

Examples:
  zappy create gh https://github.com   # Create https://zappy.sh/gh
  zappy requests gh                    # Show who followed it
  zappy am show --format yaml          # Show effective configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbosity, _ := cmd.Flags().GetCount("verbose")
			if err := logger.InitializeWithWriter(verbosity, cmd.ErrOrStderr()); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			return am.BindFlag("api.url", cmd.Root().PersistentFlags().Lookup("api-url"))
		},
	}

	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().String("api-url", "", "Override the zappy.sh endpoint (api.url)")

	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newRequestsCmd())
	rootCmd.AddCommand(newAmCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// requireArgs prints the command help when the positional argument count is wrong
func requireArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == n {
			return nil
		}
		_ = cmd.Help()
		return errors.Mark(
			errors.Newf("%s requires %d argument(s), received %d", cmd.Name(), n, len(args)),
			errors.ErrInvalidArgument,
		)
	}
}

// newAPIClient builds a service client from the effective configuration
func newAPIClient(cfg *am.Config) *api.Client {
	return api.NewClient(cfg.API.URL, httpclient.NewClient(cfg.Timeout()))
}

func loadConfig() (*am.Config, error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	if logger.ShouldOutput(logger.Verbosity, logger.OutputConfig) {
		logger.Infow("config loaded",
			logger.FieldURL, cfg.API.URL,
			"timeout", cfg.Timeout(),
			"table_width", cfg.TableWidth(),
			"files", am.LoadedFiles(),
		)
	}
	return cfg, nil
}
