package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the CLI release
const Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show CLI version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Snapshare CLI v%s\n", Version)
	},
}
