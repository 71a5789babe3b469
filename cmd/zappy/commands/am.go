package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/zappy/am"
	"github.com/teranos/zappy/errors"
	"github.com/teranos/zappy/logger"
)

func newAmCmd() *cobra.Command {
	amCmd := &cobra.Command{
		Use:   "am",
		Short: "Manage zappy configuration",
		Long: `am — Manage zappy configuration ("I am")

Configuration sources (in order of precedence):
1. Command line flags (--api-url)
2. Environment variables (ZAPPY_* prefix, ZAPPY_API_KEY for the key)
3. Project config (./am.toml, searched up the directory tree)
4. User config (~/.zappy/am.toml)
5. System config (/etc/zappy/am.toml)
6. Default values

Examples:
  zappy am show                    # Show current configuration
  zappy am show --format json      # Show configuration in JSON format
  zappy am get api.url             # Get specific config value
  zappy am init                    # Write defaults to ~/.zappy/am.toml`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective zappy configuration from all sources. The API key is redacted.",
		Args:  cobra.NoArgs,
		RunE:  runAmShow,
	}
	showCmd.Flags().String("format", am.FormatTOML, "Output format: toml, json, yaml")

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a specific configuration value",
		Long:  "Get a specific configuration value using dot notation (e.g., api.url, display.table_width)",
		Args:  requireArgs(1),
		RunE:  runAmGet,
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate current configuration",
		Args:  cobra.NoArgs,
		RunE:  runAmValidate,
	}

	whereCmd := &cobra.Command{
		Use:   "where",
		Short: "Show where configuration is loaded from",
		Long:  "List the config files checked, lowest precedence first, and whether each was loaded.",
		Args:  cobra.NoArgs,
		RunE:  runAmWhere,
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to ~/.zappy/am.toml",
		Args:  cobra.NoArgs,
		RunE:  runAmInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file (previous versions are kept as .back1..3)")

	amCmd.AddCommand(showCmd, getCmd, validateCmd, whereCmd, initCmd)
	return amCmd
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()

	if format == am.FormatTOML || format == am.FormatYAML {
		fmt.Fprintln(out, "# zappy configuration")
	}
	return am.Write(out, *cfg, format)
}

func runAmGet(cmd *cobra.Command, args []string) error {
	value, ok := am.Get(args[0])
	if !ok {
		return errors.WithHint(
			errors.Newf("configuration key %q not found", args[0]),
			"known keys: api.url, api.key, api.timeout_seconds, display.table_width, display.timezone",
		)
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	// Load validates; a separate call would only repeat it
	if _, err := loadConfig(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	loaded := make(map[string]bool)
	for _, path := range am.LoadedFiles() {
		loaded[path] = true
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  [DEFAULT]  built-in defaults")
	for _, path := range am.SearchPaths() {
		status := "missing"
		if loaded[path] {
			status = "loaded"
		} else if _, err := os.Stat(path); err == nil {
			status = "unreadable"
		}
		fmt.Fprintf(out, "  [FILE]     %s (%s)\n", path, status)
	}
	fmt.Fprintln(out, "  [ENV]      ZAPPY_* environment variables")
	fmt.Fprintln(out, "  [FLAG]     --api-url")
	return nil
}

func runAmInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path, err := am.UserConfigPath()
	if err != nil {
		return err
	}
	if err := am.WriteConfig(path, am.Defaults(), force); err != nil {
		return err
	}

	logger.Infow("config written", logger.FieldConfigFile, path)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
	return nil
}
