package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "shirt-mockup-mcp %s\n", version)
		fmt.Fprintf(cmd.OutOrStdout(), "  Build time: %s\n", buildTime)
		fmt.Fprintf(cmd.OutOrStdout(), "  Git commit: %s\n", gitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
