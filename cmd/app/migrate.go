package main

import (
	"context"
	"fmt"

	"roboshop/cmd"
	"roboshop/internal/adapters/out/auditlog"
	"roboshop/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newMigrateCommand(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the postgres schema and the audit log indexes",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			if err = postgres.Migrate(db); err != nil {
				return fmt.Errorf("migrate postgres: %w", err)
			}
			logger.Info("Postgres schema is up to date")

			if err = migrateAuditLog(c.Context(), cfg); err != nil {
				return err
			}
			logger.Info("Audit log indexes are in place")
			return nil
		},
	}
}

func migrateAuditLog(ctx context.Context, cfg cmd.Config) error {
	client, err := auditlog.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err = auditlog.NewMongoAuditLog(client.Database(cfg.MongoDB)).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("create audit log indexes: %w", err)
	}
	return nil
}

func openDatabase(cfg cmd.Config) (*gorm.DB, error) {
	db, err := postgres.Open(postgres.DSN(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSslMode))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}
