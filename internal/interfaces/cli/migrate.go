package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/turtacn/ChemSDS/internal/config"
	"github.com/turtacn/ChemSDS/internal/infrastructure/database/postgres"
)

// NewMigrateCmd creates the migrate command group.
func NewMigrateCmd() *cobra.Command {
	var migrationsPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			path := resolveMigrationsPath(migrationsPath, cliCtx.Config)
			if err := postgres.MigrateUp(databaseURL(cliCtx.Config.Database), path); err != nil {
				return err
			}
			PrintSuccess(cmd, "migrations applied")
			return nil
		},
	}

	var downSteps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			path := resolveMigrationsPath(migrationsPath, cliCtx.Config)
			if err := postgres.MigrateDown(databaseURL(cliCtx.Config.Database), path, downSteps); err != nil {
				return err
			}
			PrintSuccess(cmd, fmt.Sprintf("rolled back %d migration(s)", downSteps))
			return nil
		},
	}
	downCmd.Flags().IntVar(&downSteps, "steps", 1, "number of migrations to roll back")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current migration version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			path := resolveMigrationsPath(migrationsPath, cliCtx.Config)
			version, dirty, err := postgres.MigrationStatus(databaseURL(cliCtx.Config.Database), path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version: %d  dirty: %t\n", version, dirty)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&migrationsPath, "migrations", "", "migrations directory (default: from config)")
	cmd.AddCommand(upCmd, downCmd, statusCmd)
	return cmd
}

func resolveMigrationsPath(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.Database.MigrationPath
}

// databaseURL builds a postgres connection URL from the database config.
func databaseURL(cfg config.DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   cfg.DBName,
	}

	q := u.Query()
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	q.Set("sslmode", sslMode)
	u.RawQuery = q.Encode()
	return u.String()
}

//Personal.AI order the ending
