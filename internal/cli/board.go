package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hferris/tabula/internal/cli/appctx"
	"github.com/hferris/tabula/internal/render"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Manage boards",
}

var boardCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a board in a workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  appctx.WithApp(appctx.WithUser(), runBoardCreate),
}

var boardLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List boards in a workspace",
	Args:  cobra.NoArgs,
	RunE:  appctx.WithApp(appctx.WithUser(), runBoardLs),
}

var boardWorkspace string

func init() {
	rootCmd.AddCommand(boardCmd)
	boardCmd.AddCommand(boardCreateCmd)
	boardCmd.AddCommand(boardLsCmd)

	boardCreateCmd.Flags().StringVar(&boardWorkspace, "workspace", "", "Workspace (name or friendly ID)")
	boardLsCmd.Flags().StringVar(&boardWorkspace, "workspace", "", "Workspace (name or friendly ID)")
	boardCreateCmd.MarkFlagRequired("workspace")
	boardLsCmd.MarkFlagRequired("workspace")
}

func runBoardCreate(app *appctx.App, cmd *cobra.Command, args []string) error {
	workspaceUUID, err := app.Store.Workspaces.Resolve(boardWorkspace)
	if err != nil {
		return err
	}

	board, err := app.Store.Boards.Create(workspaceUUID, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", board.ID)
	return nil
}

func runBoardLs(app *appctx.App, cmd *cobra.Command, args []string) error {
	workspaceUUID, err := app.Store.Workspaces.Resolve(boardWorkspace)
	if err != nil {
		return err
	}

	boards, err := app.Store.Boards.ListByWorkspace(workspaceUUID)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(boards))
	for _, board := range boards {
		rows = append(rows, []string{board.ID, board.Name})
	}

	renderer := render.NewRenderer(cmd.OutOrStdout(), render.Format(app.Config.Output))
	return renderer.RenderTable([]string{"ID", "NAME"}, rows)
}
