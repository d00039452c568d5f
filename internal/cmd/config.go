package cmd

import (
	"sort"

	"github.com/spf13/cobra"
	"github.com/snapshare/cli/pkg/config"
	"github.com/snapshare/cli/pkg/output"
)

// configKeys are the settings shown by config show, in display order
var configKeys = []string{
	"api.base_url",
	"api.uploads_url",
	"api.timeout",
	"output.format",
	"log.level",
	"log.file",
	"log.max_size_mb",
	"log.max_backups",
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
	Long:  "Show and change settings stored in the config file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := output.NewPrinter(cmd.OutOrStdout(), output.GetOutputFormat())

		fields := make([]output.Field, 0, len(configKeys)+2)
		for _, k := range configKeys {
			fields = append(fields, output.Field{Key: k, Value: config.GetString(k)})
		}
		fields = append(fields,
			output.Field{Key: "config file", Value: config.GetConfigFilePath()},
			output.Field{Key: "credentials", Value: config.GetCredentialsPath()},
		)
		return p.Record("Configuration", config.AllSettings(), fields)
	},
}

var configSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Change a setting and save it",
	Args:      cobra.ExactArgs(2),
	ValidArgs: sortedKeys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == "output.format" && !output.ValidateOutputFormat(args[1]) {
			return errInvalidFormat
		}
		if err := config.SetString(args[0], args[1]); err != nil {
			return err
		}
		output.NewPrinter(cmd.OutOrStdout(), output.FormatText).
			Success("✓ %s = %s (saved to %s)", args[0], args[1], config.GetConfigFilePath())
		return nil
	},
}

func sortedKeys() []string {
	keys := append([]string(nil), configKeys...)
	sort.Strings(keys)
	return keys
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
