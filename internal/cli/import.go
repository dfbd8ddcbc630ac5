package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hferris/tabula/internal/cli/appctx"
	"github.com/hferris/tabula/internal/render"
	"github.com/hferris/tabula/internal/transfer"
)

var importCmd = &cobra.Command{
	Use:   "import <board> [file]",
	Short: "Bulk-import lists and cards into a board from JSON",
	Long: `Import reads a JSON payload (a list document or an array of them) and
writes its lists, cards, labels, and checklists into the board. The
payload is read from the given file, or from stdin when the file is
omitted or given as "-".`,
	Args: cobra.RangeArgs(1, 2),
	RunE: appctx.WithApp(appctx.WithUser(), runImport),
}

var importAtomic bool

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importAtomic, "atomic", false, "Roll back the whole import if any list fails")
}

func runImport(app *appctx.App, cmd *cobra.Command, args []string) error {
	payload, err := readPayload(cmd, args)
	if err != nil {
		return err
	}

	atomic := importAtomic || app.Config.ImportAtomic
	svc := transfer.New(app.Store, transfer.Options{Atomic: atomic})

	result, err := svc.Import(app.UserUUID, args[0], payload)
	if err != nil {
		return err
	}

	if app.Config.Output == "json" || app.Config.Output == "yaml" {
		renderer := render.NewRenderer(cmd.OutOrStdout(), render.Format(app.Config.Output))
		return renderer.RenderValue(result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d cards across %d lists (batch %s)\n",
		result.CardsCreated, result.ListsProcessed, result.BatchUUID)
	for _, warning := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
	}
	return nil
}

// readPayload reads the import payload from the file argument or stdin.
func readPayload(cmd *cobra.Command, args []string) (string, error) {
	if len(args) < 2 || args[1] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read payload from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		return "", fmt.Errorf("failed to read payload file: %w", err)
	}
	return string(data), nil
}
