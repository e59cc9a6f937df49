package main

import (
	"errors"
	"os"

	"roboshop/cmd"
	"roboshop/internal/core/application/usecases/commands"
	"roboshop/internal/core/domain/model/user"

	"github.com/spf13/cobra"
)

func newCreateAdminCommand(load configLoader) *cobra.Command {
	var email, name string
	c := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account; the password is read from ROBOSHOP_ADMIN_PASSWORD",
		RunE: func(c *cobra.Command, _ []string) error {
			password := os.Getenv("ROBOSHOP_ADMIN_PASSWORD")
			if password == "" {
				return errors.New("ROBOSHOP_ADMIN_PASSWORD must be set")
			}

			cfg, logger, err := load()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			root, err := cmd.NewCompositionRoot(cfg, cmd.Infrastructure{DB: db}, logger)
			if err != nil {
				return err
			}

			command, err := commands.NewCreateUserCommand(email, name, "", password, user.Admin)
			if err != nil {
				return err
			}
			admin, err := root.CreateCreateUserCommandHandler().Handle(c.Context(), command)
			if err != nil {
				return err
			}
			logger.Info("Admin created", "user_id", admin.ID().String(), "email", admin.Email())
			return nil
		},
	}
	c.Flags().StringVar(&email, "email", "", "admin email")
	c.Flags().StringVar(&name, "name", "Administrator", "display name")
	_ = c.MarkFlagRequired("email")
	return c
}
