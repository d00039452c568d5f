package cmd

import (
	"github.com/spf13/cobra"
	"github.com/snapshare/cli/internal/tui"
	"github.com/snapshare/cli/pkg/config"
	"github.com/snapshare/cli/pkg/service"
)

var profileTab string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "User profile commands",
	Long:  "View a user's profile, posts and reposts",
}

var profileShowCmd = &cobra.Command{
	Use:   "show [user-id]",
	Short: "Show a profile",
	Long:  "Show a profile with its posts and your reposts. Without a user id your own profile is shown.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		return service.NewProfileService(env).Show(cmd.Context(), firstArg(args), profileTab)
	},
}

var profileBrowseCmd = &cobra.Command{
	Use:   "browse [user-id]",
	Short: "Open a profile in the interactive viewer",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		if _, err := env.Session.Token(); err != nil {
			return err
		}
		return tui.Run(cmd.Context(), env.View(firstArg(args)), config.GetString("api.uploads_url"))
	},
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func init() {
	profileShowCmd.Flags().StringVar(&profileTab, "tab", service.ShowAll, "List to show: posts, reposts or all")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileBrowseCmd)
}
