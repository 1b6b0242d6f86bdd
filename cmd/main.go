package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eaglebank/expense-ledger/internal/config"
	"github.com/eaglebank/expense-ledger/internal/database"
	"github.com/eaglebank/expense-ledger/internal/logger"
	"github.com/eaglebank/expense-ledger/internal/router"
	"github.com/eaglebank/expense-ledger/shared/auth"
	"github.com/eaglebank/expense-ledger/shared/cqrs"
	"github.com/eaglebank/expense-ledger/shared/events"
	sharedredis "github.com/eaglebank/expense-ledger/shared/redis"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// @title       Expense Ledger API
// @version     1.0
// @description Multi-tenant income and expense tracking.
// @BasePath    /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database connection
	db, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		zlog.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	// Redis connection, optional
	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		client, err := sharedredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			zlog.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		rdb = client.Client
	}

	publisher, closePublisher := newPublisher(cfg, rdb, zlog)
	defer closePublisher()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	svc := router.NewServices(db, rdb, cfg.Redis.CacheTTL, publisher, tokens, zlog)

	if cfg.Owner.Email != "" {
		owner, created, err := svc.UserCommands.BootstrapOwner(ctx, cqrs.BootstrapOwnerCommand{
			Name:     cfg.Owner.Name,
			Email:    cfg.Owner.Email,
			Password: cfg.Owner.Password,
		})
		if err != nil {
			zlog.Fatal("failed to bootstrap owner", zap.Error(err))
		}
		zlog.Info("owner account ready", zap.Int64("userId", owner.ID), zap.Bool("created", created))
	}

	gin.SetMode(cfg.Server.Mode)
	engine := router.New(svc, router.Options{
		Tokens:         tokens,
		CookieSecure:   cfg.Auth.CookieSecure,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Swagger:        cfg.Swagger.Enabled,
		Logger:         zlog,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("expense ledger starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}

// newPublisher picks the event sink. Redis without a configured client falls
// back to a no-op publisher.
func newPublisher(cfg *config.Config, rdb *goredis.Client, zlog *zap.Logger) (events.Publisher, func()) {
	switch cfg.Events.Sink {
	case "kafka":
		p, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			zlog.Fatal("failed to connect to kafka", zap.Error(err))
		}
		return p, func() {
			if err := p.Close(); err != nil {
				zlog.Warn("failed to close kafka producer", zap.Error(err))
			}
		}
	case "redis":
		if rdb != nil {
			return events.NewRedisPublisher(rdb), func() {}
		}
		zlog.Warn("events sink is redis but REDIS_ADDR is empty; events are dropped")
	}
	return events.NopPublisher{}, func() {}
}
