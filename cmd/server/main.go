package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/jwtpizza/pizza-service/internal/api"
	"github.com/jwtpizza/pizza-service/internal/core/service"
	"github.com/jwtpizza/pizza-service/internal/infrastructure/db/mongo"
	"github.com/jwtpizza/pizza-service/internal/infrastructure/db/redis"
	"github.com/jwtpizza/pizza-service/internal/infrastructure/factory"
	"github.com/jwtpizza/pizza-service/internal/infrastructure/http/handlers"
	"github.com/jwtpizza/pizza-service/internal/pkg/config"
	"github.com/jwtpizza/pizza-service/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pizza-service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "pizza-service",
		Version: cfg.Version,
	})

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Dependencies ---
	userRepo := mongo.NewUserRepository(db)
	franchiseRepo := mongo.NewFranchiseRepository(db)
	menuRepo := mongo.NewMenuRepository(db)
	orderRepo := mongo.NewOrderRepository(db)
	sessions := redis.NewSessionStore(rdb, cfg.SessionTTL)
	factoryClient := factory.NewClient(factory.Config{
		URL:     cfg.Factory.URL,
		APIKey:  cfg.Factory.APIKey,
		Timeout: cfg.Factory.Timeout,
	})

	tokens := service.NewTokenService(cfg.JWTSecret, sessions)
	authService := service.NewAuthService(userRepo, tokens, log)
	if cfg.Admin.Email != "" {
		if err := authService.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	e := api.NewRouter(api.Deps{
		Config:     cfg,
		Log:        log,
		Tokens:     tokens,
		Auth:       authService,
		Users:      service.NewUserService(userRepo, tokens, log),
		Franchises: service.NewFranchiseService(franchiseRepo, userRepo, orderRepo, log),
		Orders:     service.NewOrderService(menuRepo, orderRepo, factoryClient, log),
		ReadinessChecks: map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		},
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("factory", cfg.Factory.URL).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(sctx)
	})

	return g.Wait()
}
