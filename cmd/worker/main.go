package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/unclebandit/customers-dashboard/internal/config"
	"github.com/unclebandit/customers-dashboard/internal/db"
	"github.com/unclebandit/customers-dashboard/internal/logging"
	"github.com/unclebandit/customers-dashboard/internal/queue"
	"github.com/unclebandit/customers-dashboard/internal/repository"
	"github.com/unclebandit/customers-dashboard/internal/service"
)

func main() {
	cfg, err := config.Load()
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.AMQPURL == "" {
		logger.Fatal().Msg("AMQP_URL is required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to DB")
	}
	defer conn.Close()

	q, err := queue.DialAMQP(cfg.AMQPURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer q.Close()

	repo := &repository.CustomerRepository{DB: conn, Driver: cfg.Database.Driver}
	if err := service.NewImportWorker(repo, logger).Start(q); err != nil {
		logger.Fatal().Err(err).Msg("failed to register consumer")
	}

	logger.Info().Str("topic", queue.CustomerImportsTopic).Msg("worker running, waiting for messages")
	<-ctx.Done()
	logger.Info().Msg("worker stopping")
}
