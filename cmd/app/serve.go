package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"roboshop/cmd"
	"roboshop/internal/adapters/out/auditlog"
	"roboshop/internal/adapters/out/kafka"
	"roboshop/internal/adapters/out/metrics"
	"roboshop/internal/adapters/out/redisstore"
	"roboshop/internal/core/ports"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}
			return serve(c.Context(), cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg cmd.Config, logger *slog.Logger) error {
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		defer sqlDB.Close()
	}

	redisClient, err := redisstore.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close()

	mongoClient, err := auditlog.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	var publisher ports.OrderEventPublisher = kafka.NoopPublisher{}
	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		p := kafka.NewOrderEventPublisher(kafka.NewWriter(brokers, cfg.KafkaOrderChangedTopic), logger)
		defer func() {
			if closeErr := p.Close(); closeErr != nil {
				logger.Warn("Failed to close order event writer", "error", closeErr)
			}
		}()
		publisher = p
	} else {
		logger.Warn("KAFKA_HOST is empty, order events are not published")
	}

	root, err := cmd.NewCompositionRoot(cfg, cmd.Infrastructure{
		DB:        db,
		Redis:     redisClient,
		AuditLog:  auditlog.NewMongoAuditLog(mongoClient.Database(cfg.MongoDB)),
		Publisher: publisher,
		Registry:  metrics.NewRegistry(),
	}, logger)
	if err != nil {
		return err
	}

	e, err := root.NewEcho(ctx)
	if err != nil {
		return err
	}
	e.Logger.SetLevel(log.INFO)

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e.Logger.Infof("roboshop listening on :%s", cfg.HTTPPort)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
