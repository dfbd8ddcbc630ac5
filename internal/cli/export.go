package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hferris/tabula/internal/cli/appctx"
	"github.com/hferris/tabula/internal/transfer"
)

var exportCmd = &cobra.Command{
	Use:   "export <board>",
	Short: "Export a board's lists and cards as JSON",
	Long: `Export serializes the board's visible lists, cards, labels, and
checklists as a JSON array of list documents. The output is accepted
unchanged by import.`,
	Args: cobra.ExactArgs(1),
	RunE: appctx.WithApp(appctx.WithUser(), runExport),
}

var exportOut string

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write output to file instead of stdout")
}

func runExport(app *appctx.App, cmd *cobra.Command, args []string) error {
	svc := transfer.New(app.Store, transfer.Options{})

	payload, err := svc.Export(app.UserUUID, args[0])
	if err != nil {
		return err
	}

	if exportOut != "" {
		if err := os.WriteFile(exportOut, []byte(payload+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), payload)
	return nil
}
