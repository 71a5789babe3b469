package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/zappy/display"
	"github.com/teranos/zappy/version"
)

func newVersionCmd() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show zappy version information",
		Long:  `Display version, build time, commit hash, and platform information for the zappy binary.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			out := cmd.OutOrStdout()

			if display.ShouldOutputJSON(cmd) {
				return display.OutputJSON(out, info)
			}

			fmt.Fprintln(out, info.String())
			fmt.Fprintf(out, "Platform: %s\n", info.Platform)
			fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
			return nil
		},
	}

	versionCmd.Flags().BoolP("json", "j", false, "Output version info as JSON")
	return versionCmd
}
