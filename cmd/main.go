package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/cache"
	"github.com/senyabanana/freight-service/internal/db"
	"github.com/senyabanana/freight-service/internal/events"
	"github.com/senyabanana/freight-service/internal/handlers"
	"github.com/senyabanana/freight-service/internal/idempotency"
	"github.com/senyabanana/freight-service/internal/logger"
	"github.com/senyabanana/freight-service/internal/middleware"
	"github.com/senyabanana/freight-service/internal/redisclient"
	"github.com/senyabanana/freight-service/internal/repository"
	"github.com/senyabanana/freight-service/internal/router"
	"github.com/senyabanana/freight-service/internal/router/config"
	"github.com/senyabanana/freight-service/internal/services"
	"github.com/senyabanana/freight-service/internal/storage"
	"github.com/senyabanana/freight-service/internal/worker"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatal("cannot init logger:", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runDBMigration(zlog, cfg.MigrationURL, cfg.PostgresDSN())

	dbPool, err := db.InitDb(ctx, cfg)
	if err != nil {
		zlog.Fatal("error initializing database", zap.Error(err))
	}
	defer dbPool.Close()

	rdb, err := redisclient.New(ctx, cfg)
	if err != nil {
		zlog.Fatal("error initializing redis", zap.Error(err))
	}
	defer rdb.Close()

	files, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		zlog.Fatal("error initializing file storage", zap.Error(err))
	}

	proxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		zlog.Fatal("invalid TRUSTED_PROXIES", zap.Error(err))
	}

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	signer := storage.NewSigner(cfg.JWTSecret+":files", cfg.SignedURLTTL)
	marketCache := cache.NewRedisMarketplaceCache(rdb, cfg.MarketplaceCacheTTL)
	guard := idempotency.NewGuard(idempotency.NewRedisStore(rdb), idempotency.DefaultTTL, zlog)

	userRepo := repository.NewPostgresUserRepository(dbPool)
	shipmentRepo := repository.NewPostgresShipmentRepository(dbPool)
	offerRepo := repository.NewPostgresOfferRepository(dbPool)
	quoteRepo := repository.NewPostgresQuoteRepository(dbPool)
	reviewRepo := repository.NewPostgresReviewRepository(dbPool)
	fleetRepo := repository.NewPostgresFleetRepository(dbPool)
	dashboardRepo := repository.NewPostgresDashboardRepository(dbPool)
	outboxRepo := repository.NewPostgresOutboxRepository(dbPool)

	authService := services.NewAuthService(userRepo, tokens)
	shipmentService := services.NewShipmentService(shipmentRepo, offerRepo, marketCache, zlog)
	marketplaceService := services.NewMarketplaceService(shipmentRepo, marketCache, zlog)
	offerService := services.NewOfferService(offerRepo, shipmentRepo, fleetRepo, marketCache, zlog)
	quoteService := services.NewQuoteService(quoteRepo, shipmentRepo, userRepo, marketCache, cfg.QuoteTTL, zlog)
	reviewService := services.NewReviewService(reviewRepo, shipmentRepo, offerRepo)
	fleetService := services.NewFleetService(fleetRepo, files, signer, cfg.PublicBaseURL, zlog)
	dashboardService := services.NewDashboardService(dashboardRepo, shipmentRepo, reviewRepo)

	routes := router.InitRoutes(router.Handlers{
		Auth:        handlers.NewAuthHandler(authService, zlog, cfg.HandlerTimeout),
		Shipments:   handlers.NewShipmentHandler(shipmentService, zlog, cfg.HandlerTimeout),
		Marketplace: handlers.NewMarketplaceHandler(marketplaceService, zlog, cfg.HandlerTimeout),
		Offers:      handlers.NewOfferHandler(offerService, zlog, cfg.HandlerTimeout),
		Quotes:      handlers.NewQuoteHandler(quoteService, zlog, cfg.HandlerTimeout),
		Reviews:     handlers.NewReviewHandler(reviewService, zlog, cfg.HandlerTimeout),
		Fleet:       handlers.NewFleetHandler(fleetService, zlog, cfg.HandlerTimeout),
		Dashboard:   handlers.NewDashboardHandler(dashboardService, zlog, cfg.HandlerTimeout),
		Events:      handlers.NewEventsHandler(events.NewRedisSubscriber(rdb, zlog), zlog),
	}, router.Deps{
		Logger:       zlog,
		Tokens:       tokens,
		Counter:      middleware.NewRedisCounter(rdb),
		RateLimitRPS: cfg.RateLimitRPS,
		Proxies:      proxies,
		Guard:        guard,
	})

	publisher := events.NewPublisher(outboxRepo, buildSinks(cfg, rdb, zlog), events.PublisherConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxAttempts:  cfg.OutboxMaxAttempts,
	}, zlog)

	scheduler := worker.NewScheduler(zlog, cfg.HandlerTimeout,
		&worker.QuoteExpiryJob{Repo: quoteRepo, Logger: zlog, Interval: cfg.QuoteExpirySchedule},
		&worker.OutboxBacklogJob{Repo: outboxRepo, MaxAttempts: cfg.OutboxMaxAttempts, Interval: "@every 30s"},
	)

	g, gctx := errgroup.WithContext(ctx)

	// Контексты запросов наследуют gctx: при остановке SSE-потоки закрываются сами.
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           routes,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		zlog.Info("server is listening", zap.String("address", cfg.ServerAddress))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		publisher.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return scheduler.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		zlog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			zlog.Error("server shutdown failed", zap.Error(err))
		}
		scheduler.Stop(shutdownCtx)
		publisher.Shutdown(shutdownCtx)
		return nil
	})

	if err := g.Wait(); err != nil {
		zlog.Error("service stopped with error", zap.Error(err))
	}
	zlog.Info("service stopped")
}

// buildSinks собирает каналы доставки событий: Kafka и RabbitMQ подключаются, если настроены.
func buildSinks(cfg config.Config, rdb events.RedisPublisher, zlog *zap.Logger) []events.Sink {
	sinks := []events.Sink{events.NewRedisSink(rdb)}

	brokers := make([]string, 0, len(cfg.KafkaBrokers))
	for _, b := range cfg.KafkaBrokers {
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) > 0 {
		sinks = append(sinks, events.NewKafkaSink(brokers, cfg.KafkaTopic))
		zlog.Info("kafka sink enabled", zap.Strings("brokers", brokers), zap.String("topic", cfg.KafkaTopic))
	}

	if cfg.RabbitMQURL != "" {
		rabbit, err := events.NewRabbitSink(cfg.RabbitMQURL, cfg.NotificationsQueue)
		if err != nil {
			zlog.Fatal("error connecting to rabbitmq", zap.Error(err))
		}
		sinks = append(sinks, rabbit)
		zlog.Info("rabbitmq sink enabled", zap.String("queue", cfg.NotificationsQueue))
	}
	return sinks
}

func runDBMigration(zlog *zap.Logger, migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		zlog.Fatal("cannot create a new migrate instance", zap.Error(err))
	}

	if err = migration.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		zlog.Fatal("failed to run migrate up", zap.Error(err))
	}
	zlog.Info("db migrated successfully")
}
