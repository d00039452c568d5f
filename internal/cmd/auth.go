package cmd

import (
	"github.com/spf13/cobra"
	"github.com/snapshare/cli/pkg/service"
)

var loginToken string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Manage the access token used to talk to Snapshare",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an access token",
	Long: `Store an access token issued by the Snapshare server. The token is
checked against the server and the account it belongs to is remembered.
Without --token it is read from the terminal without echo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		return service.NewAuthService(env).Login(cmd.Context(), loginToken)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		return service.NewAuthService(env).Logout()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show who is logged in",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		return service.NewAuthService(env).Status()
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginToken, "token", "", "Access token (prompted when omitted)")

	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)
}
