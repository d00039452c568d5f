package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/snapshare/cli/pkg/service"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Comment commands",
	Long:  "Read and write comments on posts",
}

var commentListCmd = &cobra.Command{
	Use:   "list <post-id>",
	Short: "Show a post's comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		return service.NewCommentService(env).List(cmd.Context(), args[0])
	},
}

var commentAddCmd = &cobra.Command{
	Use:   "add <post-id> [text...]",
	Short: "Comment on a post",
	Long:  "Comment on a post. Without text the comment is read from the terminal.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		text := strings.Join(args[1:], " ")
		return service.NewCommentService(env).Add(cmd.Context(), args[0], text)
	},
}

func init() {
	commentCmd.AddCommand(commentListCmd)
	commentCmd.AddCommand(commentAddCmd)
}
