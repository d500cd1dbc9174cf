package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/flightapp/booking/config"
	"github.com/flightapp/booking/internal/bootstrap"
	"github.com/flightapp/booking/internal/breaker"
	"github.com/flightapp/booking/internal/inventory"
	"github.com/flightapp/booking/internal/notify"
	"github.com/flightapp/booking/internal/repository"
	"github.com/flightapp/booking/internal/service/booking"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	producer := notify.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.NotificationsTopic, cfg.Kafka.RoutingKey)
	defer producer.Close()

	dispatcher := notify.NewDispatcher(producer, logger, cfg.Notify.QueueSize)
	defer dispatcher.Close()

	var invClient inventory.Client = inventory.NewHTTPClient(cfg.Inventory.BaseURL, cfg.Inventory.Timeout())
	if cfg.Redis.Addr != "" && cfg.Inventory.SnapshotTTL() > 0 {
		invClient = inventory.NewCachedClient(invClient, cfg.Redis, cfg.Inventory.SnapshotTTL())
	}

	bookingRepo := repository.NewBookingRepository(pool)
	bookingService := booking.NewBookingService(
		bookingRepo,
		invClient,
		dispatcher,
		logger,
		booking.WithPNRPrefix(cfg.Booking.PNRPrefix),
		booking.WithPNRRetries(cfg.Booking.PNRMaxRetries),
		booking.WithStoreTimeout(cfg.Database.Timeout()),
	)
	resilient := booking.NewResilientBookingService(bookingService, logger, breaker.Settings{
		FailureThreshold: cfg.Breaker.FailureThreshold,
		Cooldown:         cfg.Breaker.Cooldown(),
		HalfOpenProbes:   cfg.Breaker.HalfOpenProbes,
	})

	if err := bootstrap.Run(ctx, cfg, resilient, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
