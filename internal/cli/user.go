package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hferris/tabula/internal/cli/appctx"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a user",
	Args:  cobra.ExactArgs(1),
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runUserCreate),
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)
}

func runUserCreate(app *appctx.App, cmd *cobra.Command, args []string) error {
	user, err := app.Store.Users.Create(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", user.ID)
	return nil
}
