// @title                       KGL Groceries API
// @version                     1.0.0
// @description                 Procurement, sales and user management for KGL Groceries.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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

	"github.com/kgl-groceries/produce-api/internal/api"
	"github.com/kgl-groceries/produce-api/internal/api/handler"
	"github.com/kgl-groceries/produce-api/internal/core/domain"
	"github.com/kgl-groceries/produce-api/internal/core/service"
	"github.com/kgl-groceries/produce-api/internal/core/validation"
	"github.com/kgl-groceries/produce-api/internal/infrastructure/db/mongo"
	"github.com/kgl-groceries/produce-api/internal/infrastructure/db/redis"
	"github.com/kgl-groceries/produce-api/internal/infrastructure/queue"
	"github.com/kgl-groceries/produce-api/internal/pkg/config"
	"github.com/kgl-groceries/produce-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Service: "produce-api",
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	readiness := map[string]handler.Pinger{"mongodb": mongo.NewPinger(mongoClient)}

	deps := api.Dependencies{Log: logger.Component("http")}

	if cfg.Auth.LoginRateLimit > 0 {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		readiness["redis"] = redis.NewPinger(rdb)
		deps.LoginLimiter = redis.NewLoginLimiter(rdb, cfg.Auth.LoginRateLimit, time.Minute)
	}
	deps.Readiness = readiness

	// --- Auth core ---
	tokens, err := service.NewJWTService(service.TokenConfig{
		Secret:             cfg.Auth.JWTSecret,
		AllowDefaultSecret: cfg.Auth.AllowDefaultSecret,
	}, logger.Component("token"))
	if err != nil {
		return err
	}

	validator, err := validation.New(validation.DefaultSchemas())
	if err != nil {
		return err
	}

	poolCtx, stopPool := context.WithCancel(context.Background())
	defer stopPool()
	hashPool := queue.NewHashPool(cfg.Auth.HashWorkers, service.NewBcryptHasher(cfg.Auth.BcryptCost), logger.Component("hash_pool"))
	hashPool.Start(poolCtx)

	// --- Services ---
	userRepo := mongo.NewUserRepository(db)
	userService := service.NewUserService(userRepo, hashPool, logger.Component("users"))

	deps.Tokens = tokens
	deps.Validator = validator
	deps.Auth = service.NewAuthService(userRepo, hashPool, tokens, logger.Component("auth"))
	deps.Users = userService
	deps.Procurements = service.NewProcurementService(mongo.NewProcurementRepository(db), logger.Component("procurement"))
	deps.Sales = service.NewSaleService(mongo.NewSaleRepository(db), logger.Component("sales"))

	if cfg.Seed.Enabled() {
		created, err := userService.EnsureUser(ctx, domain.NewUser{
			Username: cfg.Seed.ManagerUsername,
			Email:    cfg.Seed.ManagerEmail,
			Password: cfg.Seed.ManagerPassword,
			Role:     domain.RoleManager,
		})
		if err != nil {
			return err
		}
		if created {
			log.Info().Str("username", cfg.Seed.ManagerUsername).Msg("bootstrap manager created")
		}
	}

	// --- HTTP server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
