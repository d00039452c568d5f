package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/snapshare/cli/pkg/config"
	clierrors "github.com/snapshare/cli/pkg/errors"
	"github.com/snapshare/cli/pkg/logger"
	"github.com/snapshare/cli/pkg/output"
	"github.com/snapshare/cli/pkg/profileview"
	"github.com/snapshare/cli/pkg/service"
)

var errInvalidFormat = clierrors.ValidationError("output", "must be text, json or table")

var (
	verbose    bool
	configPath string
	outputFmt  string
)

var rootCmd = &cobra.Command{
	Use:   "snapshare",
	Short: "Snapshare CLI - photo sharing from the terminal",
	Long: `Snapshare CLI is a command-line client for the Snapshare photo
sharing service. Browse profiles, like, repost and comment on posts,
and manage your own posts directly from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(configPath); err != nil {
			return fmt.Errorf("initializing config: %w", err)
		}

		logger.Init(verbose)

		if cmd.Flags().Changed("output") {
			if !output.ValidateOutputFormat(outputFmt) {
				return errInvalidFormat
			}
			config.Set("output.format", outputFmt)
		}
		return nil
	},
}

// Execute runs the root command until it returns or the process is
// interrupted
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(err)
		stop()
		os.Exit(1)
	}
}

// printError shows the view's message, when there is one, above the
// categorized error
func printError(err error) {
	var opErr *profileview.OpError
	if errors.As(err, &opErr) {
		color.New(color.FgRed).Fprintln(os.Stderr, opErr.Message)
	}
	logger.Debug("Command failed", "error", err)
	fmt.Fprint(os.Stderr, clierrors.FormatError(err))
}

// newEnv wires the services for a command
func newEnv() (*service.Env, error) {
	return service.NewEnv()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/snapshare/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "Output format: text, json, table")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
