package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hferris/tabula/internal/cli/appctx"
	"github.com/hferris/tabula/internal/domain"
)

var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Manage workspaces",
}

var workspaceCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a workspace with the current user as owner",
	Args:  cobra.ExactArgs(1),
	RunE:  appctx.WithApp(appctx.WithUser(), runWorkspaceCreate),
}

var workspaceAddMemberCmd = &cobra.Command{
	Use:   "add-member <workspace> <user>",
	Short: "Add a user to a workspace",
	Args:  cobra.ExactArgs(2),
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runWorkspaceAddMember),
}

var addMemberRole string

func init() {
	rootCmd.AddCommand(workspaceCmd)
	workspaceCmd.AddCommand(workspaceCreateCmd)
	workspaceCmd.AddCommand(workspaceAddMemberCmd)

	workspaceAddMemberCmd.Flags().StringVar(&addMemberRole, "role", "member", "Membership role: owner or member")
}

func runWorkspaceCreate(app *appctx.App, cmd *cobra.Command, args []string) error {
	workspace, err := app.Store.Workspaces.Create(args[0])
	if err != nil {
		return err
	}

	if err := app.Store.Workspaces.AddMember(workspace.UUID, app.UserUUID, domain.WorkspaceRoleOwner); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", workspace.ID)
	return nil
}

func runWorkspaceAddMember(app *appctx.App, cmd *cobra.Command, args []string) error {
	if err := domain.ValidateWorkspaceRole(addMemberRole); err != nil {
		return err
	}

	workspaceUUID, err := app.Store.Workspaces.Resolve(args[0])
	if err != nil {
		return err
	}
	userUUID, err := app.Store.Users.Resolve(args[1])
	if err != nil {
		return err
	}

	return app.Store.Workspaces.AddMember(workspaceUUID, userUUID, domain.WorkspaceRole(addMemberRole))
}
