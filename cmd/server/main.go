// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/unclebandit/customers-dashboard/internal/config"
	"github.com/unclebandit/customers-dashboard/internal/controller"
	"github.com/unclebandit/customers-dashboard/internal/db"
	"github.com/unclebandit/customers-dashboard/internal/handler"
	"github.com/unclebandit/customers-dashboard/internal/logging"
	"github.com/unclebandit/customers-dashboard/internal/queue"
	"github.com/unclebandit/customers-dashboard/internal/repository"
	"github.com/unclebandit/customers-dashboard/internal/server"
	"github.com/unclebandit/customers-dashboard/internal/service"
	"github.com/unclebandit/customers-dashboard/internal/view"
)

func main() {
	cfg, err := config.Load()
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	conn, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer conn.Close()
	logger.Info().Str("driver", cfg.Database.Driver).Msg("connected to database")

	if err := db.Migrate(ctx, conn, cfg.Database.Driver); err != nil {
		return err
	}

	customerRepo := &repository.CustomerRepository{DB: conn, Driver: cfg.Database.Driver}

	q, err := newQueue(cfg, logger, customerRepo)
	if err != nil {
		return err
	}
	defer q.Close()

	customerService := &service.CustomerService{
		CustomerRepo: customerRepo,
		Queue:        q,
		FetchTimeout: cfg.FetchTimeout,
	}

	views, err := view.New()
	if err != nil {
		return err
	}

	router := server.NewRouter(server.Deps{
		Logger:             logger,
		DB:                 conn,
		CustomersPage:      handler.NewCustomersPageHandler(customerService, views),
		CustomerController: &controller.CustomerController{CustomerService: customerService},
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		logger.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newQueue uses RabbitMQ when AMQP_URL is set; otherwise imports are applied
// in-process by an import worker subscribed to an in-memory queue.
func newQueue(cfg config.Config, logger zerolog.Logger, repo *repository.CustomerRepository) (queue.Queue, error) {
	if cfg.AMQPURL != "" {
		q, err := queue.DialAMQP(cfg.AMQPURL, logger)
		if err != nil {
			return nil, err
		}
		return q, nil
	}
	q := queue.NewInMemoryQueue(logger)
	if err := service.NewImportWorker(repo, logger).Start(q); err != nil {
		return nil, err
	}
	logger.Warn().Msg("AMQP_URL not set, customer imports are processed in-process")
	return q, nil
}
