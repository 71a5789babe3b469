package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/zappy/am/geotime"
	"github.com/teranos/zappy/api"
	"github.com/teranos/zappy/display"
	"github.com/teranos/zappy/errors"
	"github.com/teranos/zappy/logger"
)

func newRequestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "requests <alias_name>",
		Short: "Show the requests made to an alias",
		Long: `Fetch the request log of an alias and print it as a table.

Requires an API key in ZAPPY_API_KEY (or api.key in am.toml).

Examples:
  ZAPPY_API_KEY=... zappy requests gh`,
		Args: requireArgs(1),
		RunE: runRequests,
	}
}

func runRequests(cmd *cobra.Command, args []string) error {
	aliasName := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, err := cfg.Credential()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Fetching requests for alias %s\n", aliasName)

	result, err := newAPIClient(cfg).GetRequests(cmd.Context(), api.APIKey(key), aliasName)
	if err != nil {
		// Transport and decoding failures are reported, not fatal
		logger.Infow("request log fetch failed", logger.FieldAlias, aliasName, logger.FieldError, err)
		fmt.Fprintf(out, "Failed to get requests for alias %s because %v\n", aliasName, err)
		return nil
	}

	switch r := result.(type) {
	case api.RequestLog:
		loc, err := cfg.Location()
		if err != nil {
			return err
		}
		if logger.ShouldOutput(logger.Verbosity, logger.OutputInternalOp) {
			logTimezone(loc)
		}

		// Render before printing anything so a bad date leaves no partial output
		renderer := display.NewRequestTable(cfg.TableWidth())
		renderer.Location = loc
		renderer.Color = display.IsTerminal(out)
		table, err := renderer.Render(r.Entries)
		if err != nil {
			return errors.Wrapf(err, "failed to render requests for alias %s", aliasName)
		}
		if r.Count != len(r.Entries) {
			logger.Debugw("service count differs from entries received",
				logger.FieldAlias, aliasName, logger.FieldCount, r.Count, "entries", len(r.Entries))
		}
		fmt.Fprintf(out, "Total of %d requests\n", len(r.Entries))
		fmt.Fprintln(out, table)
	case api.RequestLogRejected:
		return errors.Newf("Failed to get requests for alias %s because %s", aliasName, r.Reason)
	default:
		return errors.Newf("unexpected request log result %T", result)
	}
	return nil
}

// logTimezone records which zone zone-less timestamps are read in
func logTimezone(loc *time.Location) {
	if loc != time.Local {
		logger.Debugw("reading zone-less timestamps", "timezone", loc.String())
		return
	}
	tz, err := geotime.DetectLocalTimezone()
	if err != nil {
		logger.Debugw("reading zone-less timestamps in host zone", logger.FieldError, err)
		return
	}
	logger.Debugw("reading zone-less timestamps in host zone", "timezone", tz)
}
