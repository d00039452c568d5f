package cmd

import (
	"github.com/spf13/cobra"
	"github.com/snapshare/cli/pkg/service"
)

var (
	postOwner     string
	postDeleteYes bool
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post commands",
	Long:  "List, like, repost and delete posts",
}

var postListCmd = &cobra.Command{
	Use:   "list [user-id]",
	Short: "List a user's posts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		return service.NewPostService(env).List(cmd.Context(), firstArg(args))
	},
}

var postLikeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Like a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		return service.NewPostService(env).Like(cmd.Context(), args[0], postOwner, true)
	},
}

var postUnlikeCmd = &cobra.Command{
	Use:   "unlike <post-id>",
	Short: "Remove your like from a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		return service.NewPostService(env).Like(cmd.Context(), args[0], postOwner, false)
	},
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Delete one of your posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		return service.NewPostService(env).Delete(cmd.Context(), args[0], postDeleteYes)
	},
}

var postRepostCmd = &cobra.Command{
	Use:   "repost <post-id>",
	Short: "Repost a post to your reposts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		return service.NewPostService(env).Repost(cmd.Context(), args[0])
	},
}

var postRepostsCmd = &cobra.Command{
	Use:   "reposts",
	Short: "List your reposts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		return service.NewPostService(env).Reposts(cmd.Context())
	},
}

func init() {
	for _, c := range []*cobra.Command{postLikeCmd, postUnlikeCmd} {
		c.Flags().StringVar(&postOwner, "user", "", "User id of the post's owner (default: you)")
	}
	postDeleteCmd.Flags().BoolVarP(&postDeleteYes, "yes", "y", false, "Skip the confirmation prompt")

	postCmd.AddCommand(postListCmd)
	postCmd.AddCommand(postLikeCmd)
	postCmd.AddCommand(postUnlikeCmd)
	postCmd.AddCommand(postDeleteCmd)
	postCmd.AddCommand(postRepostCmd)
	postCmd.AddCommand(postRepostsCmd)
}
