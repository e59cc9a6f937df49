package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"roboshop/cmd"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:           "roboshop",
		Short:         "Robotics parts storefront and operations backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	load := func() (cmd.Config, *slog.Logger, error) {
		cfg, err := cmd.LoadConfig(envFile)
		if err != nil {
			return cmd.Config{}, nil, err
		}
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
		slog.SetDefault(logger)
		return cfg, logger, nil
	}

	root.AddCommand(
		newServeCommand(load),
		newMigrateCommand(load),
		newCreateAdminCommand(load),
	)
	return root
}

type configLoader func() (cmd.Config, *slog.Logger, error)
