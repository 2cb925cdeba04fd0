package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/booklending/internal/config"
	"github.com/mrlokans/booklending/internal/database"
)

type seedOptions struct {
	databasePath string
}

func newSeedCommand() *cobra.Command {
	opts := &seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo libraries, books and users",
		Long: `Load demo libraries, books and users into the configured database.

Seeding is idempotent: records that already exist are left untouched.`,
		Example: `  booklending seed
  booklending seed --db ./demo.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, config.NewConfig(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.databasePath, "db", "", "SQLite database file (overrides DATABASE_PATH)")
	return cmd
}

func runSeed(cmd *cobra.Command, cfg *config.Config, opts *seedOptions) error {
	if opts.databasePath != "" {
		cfg.Database.Driver = config.DatabaseDriverSQLite
		cfg.Database.Path = opts.databasePath
	}

	db, err := database.NewDatabase(cfg.Database, zap.NewNop())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	store := database.NewStore(db.DB, cfg.Borrowing.DefaultBorrowLimit)
	result, err := store.Seed(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Seed complete")
	fmt.Fprintln(out, "=============")
	fmt.Fprintf(out, "Libraries: %d\n", result.Libraries)
	fmt.Fprintf(out, "Books:     %d\n", result.Books)
	fmt.Fprintf(out, "Users:     %d\n", result.Users)
	return nil
}
