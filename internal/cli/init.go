package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hferris/tabula/internal/config"
	"github.com/hferris/tabula/internal/db"
	"github.com/hferris/tabula/internal/domain"
	"github.com/hferris/tabula/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the tabula database and configuration",
	Long: `Initialize creates the SQLite database, runs migrations, and seeds a
default user and workspace.`,
	RunE: runInit,
}

var (
	initUserName      string
	initWorkspaceName string
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initUserName, "user-name", "local", "Name for the default user")
	initCmd.Flags().StringVar(&initWorkspaceName, "workspace-name", "Personal", "Name for the default workspace")
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if dbPath := cmd.Flag("db").Value.String(); dbPath != "" {
		cfg.DBPath = dbPath
	}

	dbExists := false
	if _, err := os.Stat(cfg.DBPath); err == nil {
		dbExists = true
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if !dbExists {
		if err := seedDatabase(database); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}

		fmt.Printf("Initialized new database at %s\n", cfg.DBPath)
		fmt.Printf("Seeded default user: %s\n", initUserName)
		fmt.Printf("Seeded workspace: %s\n", initWorkspaceName)
	} else {
		fmt.Printf("Database already initialized at %s\n", cfg.DBPath)
		fmt.Printf("Migrations applied\n")
	}

	return nil
}

func seedDatabase(database *db.DB) error {
	s := store.New(database)

	user, err := s.Users.Create(initUserName)
	if err != nil {
		return fmt.Errorf("failed to create default user: %w", err)
	}

	workspace, err := s.Workspaces.Create(initWorkspaceName)
	if err != nil {
		return fmt.Errorf("failed to create default workspace: %w", err)
	}

	if err := s.Workspaces.AddMember(workspace.UUID, user.UUID, domain.WorkspaceRoleOwner); err != nil {
		return fmt.Errorf("failed to add default user to workspace: %w", err)
	}

	return nil
}
