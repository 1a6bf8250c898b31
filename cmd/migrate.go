package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/infra"
	"github.com/Alturino/storefront/internal/log"
)

func newMigrateCommand() *cobra.Command {
	var path string

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert database migrations",
	}
	migrateCmd.PersistentFlags().StringVar(&path, "path", "", "migration source, defaults to db.migration_path")

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigration(cmd.Context(), path, infra.RunMigrationUp)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert all migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigration(cmd.Context(), path, infra.RunMigrationDown)
			},
		},
	)
	return migrateCmd
}

func runMigration(
	c context.Context,
	path string,
	migration func(context.Context, *pgxpool.Pool, string) error,
) error {
	logger := log.InitLogger(fmt.Sprintf("/var/log/%s.log", constants.AppMigration)).
		With().
		Str(log.KeyAppName, constants.AppMigration).
		Str(log.KeyTag, "main runMigration").
		Logger()
	c = logger.WithContext(c)

	cfg := config.InitConfig(c, constants.AppMigration)
	if path == "" {
		path = cfg.Database.MigrationPath
	}
	logger = logger.With().Str("migrationPath", path).Logger()

	db := infra.NewDatabaseClient(c, cfg.Database)
	defer db.Close()

	if err := migration(logger.WithContext(c), db, path); err != nil {
		err = fmt.Errorf("failed running migration with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("migration finished")
	return nil
}
