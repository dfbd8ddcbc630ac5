// Package appctx provides a shared bootstrap helper for CLI commands.
// It centralizes config loading, database opening, and user resolution
// to reduce boilerplate across commands.
package appctx

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hferris/tabula/internal/config"
	"github.com/hferris/tabula/internal/db"
	"github.com/hferris/tabula/internal/store"
)

// App holds the shared application context for commands.
type App struct {
	// Config is the loaded configuration
	Config *config.Config

	// DB is the opened database connection (nil if NeedsDB is false)
	DB *db.DB

	// Store wraps DB with the persistence layer (nil if NeedsDB is false)
	Store *store.Store

	// UserUUID is the resolved user UUID (empty if NeedsUser is false)
	UserUUID string

	// UserID is the resolved user friendly ID (e.g., "U-00001")
	UserID string
}

// Close releases resources held by the App.
// Safe to call multiple times.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
		a.DB = nil
	}
}

// Options configures the bootstrap behavior.
type Options struct {
	// NeedsDB indicates whether to open the database.
	NeedsDB bool

	// NeedsUser indicates whether to resolve the current user.
	// Requires NeedsDB to also be true.
	NeedsUser bool
}

// DefaultOptions returns default options (DB required, no user).
func DefaultOptions() Options {
	return Options{NeedsDB: true}
}

// WithUser returns options that require both DB and user.
func WithUser() Options {
	return Options{NeedsDB: true, NeedsUser: true}
}

// RunFunc is the signature for command run functions.
type RunFunc func(app *App, cmd *cobra.Command, args []string) error

// WithApp wraps a command's run function with shared bootstrap logic.
// It loads config, opens the database, and optionally resolves the user.
// The database is closed automatically when the wrapped function returns.
func WithApp(opts Options, fn RunFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := Bootstrap(cmd, opts)
		if err != nil {
			return err
		}
		defer app.Close()

		return fn(app, cmd, args)
	}
}

// Bootstrap initializes the App according to the given options.
// Callers are responsible for calling App.Close() when done.
func Bootstrap(cmd *cobra.Command, opts Options) (*App, error) {
	app := &App{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Override DB path from --db flag if provided
	if dbFlag := cmd.Flag("db"); dbFlag != nil {
		if dbPath := dbFlag.Value.String(); dbPath != "" {
			app.Config.DBPath = dbPath
		}
	}
	if outFlag := cmd.Flag("output"); outFlag != nil {
		if output := outFlag.Value.String(); output != "" {
			app.Config.Output = output
		}
	}

	if opts.NeedsDB {
		database, err := db.Open(app.Config.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}

		_, pending, err := database.MigrationStatus()
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to check migration status: %w", err)
		}
		if len(pending) > 0 {
			database.Close()
			return nil, fmt.Errorf("database requires migration: %d pending migration(s). Run 'tabula init' to update", len(pending))
		}

		app.DB = database
		app.Store = store.New(database)
	}

	if opts.NeedsUser {
		if app.Store == nil {
			app.Close()
			return nil, fmt.Errorf("user resolution requires database (set NeedsDB: true)")
		}

		userUUID, userID, err := resolveUser(app.Store, app.Config, cmd)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.UserUUID = userUUID
		app.UserID = userID
	}

	return app, nil
}

// resolveUser resolves the current user from flags, env, or config.
func resolveUser(s *store.Store, cfg *config.Config, cmd *cobra.Command) (uuid, friendlyID string, err error) {
	var identifier string
	if asFlag := cmd.Flag("as"); asFlag != nil {
		identifier = asFlag.Value.String()
	}
	if identifier == "" {
		identifier = cfg.GetUserID()
	}
	if identifier == "" {
		return "", "", fmt.Errorf("no user configured (set TABULA_USER, TABULA_USER_ID, or use --as flag)")
	}

	userUUID, err := s.Users.Resolve(identifier)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve user: %w", err)
	}

	user, err := s.Users.GetByUUID(userUUID)
	if err != nil {
		return "", "", fmt.Errorf("failed to get user: %w", err)
	}

	return user.UUID, user.ID, nil
}
