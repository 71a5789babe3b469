package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/zappy/api"
	"github.com/teranos/zappy/errors"
	"github.com/teranos/zappy/logger"
)

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <alias_name> <url>",
		Short: "Create an alias for a URL",
		Long: `Create a short alias on zappy.sh that redirects to url.

The URL is sent as is; the service decides whether it is acceptable.
A rejected alias (already taken, invalid URL) is reported but is not an error.

Examples:
  zappy create gh https://github.com`,
		Args: requireArgs(2),
		RunE: runCreate,
	}
}

func runCreate(cmd *cobra.Command, args []string) error {
	aliasName, targetURL := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Transport and decoding failures abort the command
	result, err := newAPIClient(cfg).CreateAlias(cmd.Context(), aliasName, targetURL)
	if err != nil {
		return errors.Wrapf(err, "failed to create alias %s", aliasName)
	}

	out := cmd.OutOrStdout()
	summarize := logger.ShouldOutput(logger.Verbosity, logger.OutputOperationInfo)
	switch r := result.(type) {
	case api.AliasCreated:
		if summarize {
			logger.Infow("alias created", logger.FieldAlias, aliasName, logger.FieldURL, targetURL)
		}
		fmt.Fprintf(out, "Successfully created alias %s with url %s\n", aliasName, targetURL)
	case api.AliasRejected:
		if summarize {
			logger.Infow("alias rejected", logger.FieldAlias, aliasName, logger.FieldError, r.Reason)
		}
		fmt.Fprintf(out, "Failed to create alias %s with url %s because %s\n", aliasName, targetURL, r.Reason)
	default:
		return errors.Newf("unexpected alias creation result %T", result)
	}
	return nil
}
