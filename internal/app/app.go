package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	"github.com/sanchey92/storefront/internal/config"
	"github.com/sanchey92/storefront/internal/http/handlers"
	"github.com/sanchey92/storefront/internal/service/customer"
	"github.com/sanchey92/storefront/internal/service/order"
	"github.com/sanchey92/storefront/internal/service/tenant"
	"github.com/sanchey92/storefront/internal/storage/pg"
	"github.com/sanchey92/storefront/pkg/kafka"
	"github.com/sanchey92/storefront/pkg/outbox"
)

type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	pgStorage *pg.Storage
	producer  *kafka.Producer
	relay     *outbox.Relay
	server    *http.Server
}

func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}

	ctx := context.Background()

	// Logger initialisation
	logger := newLogger(cfg.App.LogLevel, cfg.App.Name)
	slog.SetDefault(logger)
	logger.Info("initialising", slog.String("service", cfg.App.Name))

	// PgStorage initialisation
	pgConfig := &pg.StorageConfig{
		DSN:             cfg.Postgres.DSN,
		MaxConns:        cfg.Postgres.MaxConns,
		MinConns:        cfg.Postgres.MinConns,
		MaxConnLife:     cfg.Postgres.MaxConnLifetime,
		MaxConnIdleTime: cfg.Postgres.MaxConnIdleTime,
	}

	pgStorage, err := pg.NewPGStorage(ctx, logger, pgConfig)
	if err != nil {
		return nil, fmt.Errorf("app creation: %w", err)
	}

	logger.Info("postgres connected")

	// Kafka producer + outbox relay
	producer, err := kafka.NewProducer(&kafka.ProducerConfig{
		Brokers:     cfg.Kafka.Brokers,
		Acks:        cfg.Kafka.Acks,
		LingerMs:    cfg.Kafka.LingerMs,
		Compression: cfg.Kafka.Compression,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("app creation: %w", err)
	}

	relay := outbox.NewRelay(pgStorage, producer, logger, cfg.Outbox.BatchSize, cfg.Outbox.PollInterval)

	// Services
	tolerance, err := decimal.NewFromString(cfg.Orders.TotalTolerance)
	if err != nil {
		return nil, fmt.Errorf("parse total tolerance: %w", err)
	}

	tenantSvc := tenant.NewService(logger, pgStorage)
	customerSvc := customer.NewService(logger, pgStorage)
	orderSvc := order.NewService(logger, pgStorage, pgStorage, pgStorage, order.Config{
		IDPrefix:        cfg.Orders.IDPrefix,
		SequenceRetries: cfg.Orders.SequenceRetries,
		TotalTolerance:  tolerance,
		EventTopic:      cfg.Kafka.EventTopic,
	})

	// HTTP server
	router := handlers.NewRouter(logger, cfg.Auth.JWTSecret,
		handlers.NewOrders(tenantSvc, customerSvc, orderSvc), pgStorage)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return &App{
		cfg:       cfg,
		logger:    logger,
		pgStorage: pgStorage,
		producer:  producer,
		relay:     relay,
		server:    server,
	}, nil
}

// Run starts the HTTP server and the outbox relay and blocks until a
// shutdown signal arrives or a component fails.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)

	go func() {
		a.logger.Info("http server started", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	go func() {
		if err := a.relay.Run(ctx); err != nil {
			errCh <- fmt.Errorf("outbox relay: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case runErr = <-errCh:
		a.logger.Error("component failed", slog.Any("error", runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http shutdown", slog.Any("error", err))
	}
	a.producer.Close()
	a.pgStorage.Close()

	a.logger.Info("stopped")
	return runErr
}

func newLogger(level, service string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "info":
		lvl = slog.LevelInfo
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})).
		With(slog.String("service", service))
}
