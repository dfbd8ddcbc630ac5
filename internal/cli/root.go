// Package cli implements the tabula command tree.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tabula",
	Short: "Board import/export CLI on a SQLite backend",
	Long: `tabula manages kanban boards on a SQLite backend and moves their
content in and out as JSON: bulk import of lists, cards, labels, and
checklists, and a symmetric export that re-imports cleanly.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to database file (overrides TABULA_DB_PATH)")
	rootCmd.PersistentFlags().String("as", "", "User to perform action as (name or friendly ID)")
	rootCmd.PersistentFlags().String("output", "", "Output format: table, json, yaml")
}
