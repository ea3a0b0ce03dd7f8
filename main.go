// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cinema-reservation/cmd"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/internal/wire"
	"cinema-reservation/internal/worker"
	"cinema-reservation/pkg/cache"
	"cinema-reservation/pkg/clock"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/events"
	"cinema-reservation/pkg/metrics"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal: %+v", err)
	}
}

func run() error {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using production logger.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.Duration("lock_ttl", config.Reservation.LockTTL),
		zap.Duration("payment_timeout", config.Reservation.PaymentTimeout),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if config.Database.MigrateOnStart {
		if err := database.Migrate(database.DSN(config.Database), config.Database.MigrationsPath); err != nil {
			return err
		}
		logger.Info("Database migrated", zap.String("source", config.Database.MigrationsPath))
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	ports := usecase.Ports{
		Clock:   clock.NewRealClock(),
		Metrics: metrics.New(),
	}

	// Seat map cache is optional; without Redis every read hits Postgres.
	if config.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, config.Redis.Addr, config.Redis.Password, config.Redis.DB, config.Redis.TLS)
		if err != nil {
			return err
		}
		defer client.Close()
		ports.Cache = cache.NewSeatCache(client)
		logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
	}

	// Events are optional; without a broker they are dropped.
	var publisher interface {
		usecase.EventPublisher
		Close() error
	} = events.NoopPublisher{}
	if config.AMQP.URL != "" {
		amqpPublisher := events.NewAMQPPublisher(config.AMQP.URL, config.AMQP.Exchange, logger)
		if err := amqpPublisher.Connect(); err != nil {
			logger.Warn("AMQP unavailable, will retry on first publish", zap.Error(err))
		}
		publisher = amqpPublisher
	}
	defer publisher.Close()
	ports.Publisher = publisher

	// Initialize all repositories
	repos := repository.NewRepository(db, logger, ports.Metrics)

	// Wire all dependencies
	app := wire.Wiring(repos, db, config, ports, logger)

	sweeper := worker.NewExpirySweeper(
		app.Service.Order,
		app.Service.SeatLock,
		config.Reservation.SweepInterval,
		config.Reservation.SweepBatchSize,
		logger,
	)

	go sweeper.Start(ctx)

	// Start server
	err = cmd.APIServer(ctx, app.Router, config.App.Port, logger)

	// waits for an in-flight sweep so its transactions finish before the pool closes
	sweeper.Stop()
	return err
}
