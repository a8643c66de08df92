// Command server runs the SoundWolves HTTP API.
//
// @title                       SoundWolves API
// @version                     1.0
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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

	"github.com/rs/zerolog"

	"github.com/soundwolves/soundwolves-api/internal/api"
	"github.com/soundwolves/soundwolves-api/internal/api/handler"
	"github.com/soundwolves/soundwolves-api/internal/core/ports"
	"github.com/soundwolves/soundwolves-api/internal/core/service"
	mongodb "github.com/soundwolves/soundwolves-api/internal/infrastructure/db/mongo"
	redisdb "github.com/soundwolves/soundwolves-api/internal/infrastructure/db/redis"
	"github.com/soundwolves/soundwolves-api/internal/infrastructure/janitor"
	"github.com/soundwolves/soundwolves-api/internal/infrastructure/memory"
	"github.com/soundwolves/soundwolves-api/internal/pkg/clock"
	"github.com/soundwolves/soundwolves-api/internal/pkg/config"
	"github.com/soundwolves/soundwolves-api/pkg/logger"
)

const serviceName = "soundwolves-api"

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == config.EnvDevelopment,
		Service: serviceName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

// stores groups the persistence backends selected by STORE_BACKEND.
type stores struct {
	users         ports.AuthRepository
	refreshTokens ports.RefreshTokenRepository
	statusChecks  ports.StatusCheckRepository
	readiness     map[string]handler.Pinger
	close         func(ctx context.Context) error
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	clk := clock.System{}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}

	limiterStore, closeLimiter, err := openLimiterStore(ctx, cfg, clk, st.readiness)
	if err != nil {
		_ = st.close(context.Background())
		return err
	}

	cleanup := func() {
		_ = closeLimiter()
		_ = st.close(context.Background())
	}

	tokens, err := service.NewTokenService(service.TokenConfig{
		Secret:     []byte(cfg.Auth.JWTSecret),
		Issuer:     cfg.Auth.JWTIssuer,
		AccessTTL:  cfg.Auth.AccessTokenTTL,
		RefreshTTL: cfg.Auth.RefreshTokenTTL,
	}, clk)
	if err != nil {
		cleanup()
		return fmt.Errorf("token service: %w", err)
	}
	if tokens.Ephemeral() {
		log.Warn().Msg("JWT_SECRET is not set; using a random per-process key, tokens will not survive a restart")
	}

	authService, err := service.NewAuthService(st.users, st.refreshTokens, tokens, service.AuthConfig{
		BcryptCost:               cfg.Auth.BcryptCost,
		Lockout:                  service.NewLockoutPolicy(cfg.Auth.LockoutThreshold, cfg.Auth.LockoutDuration),
		RequireRegisteredRefresh: cfg.Auth.RefreshRegistryCheck,
	}, clk, logger.Component("auth"))
	if err != nil {
		cleanup()
		return fmt.Errorf("auth service: %w", err)
	}
	statusService := service.NewStatusCheckService(st.statusChecks, clk, logger.Component("status"))
	limiter := service.NewRateLimiter(limiterStore, service.DefaultRateWindow, clk)

	tasks := []janitor.Task{{
		Name: "expired_refresh_tokens",
		Run: func(ctx context.Context) (int64, error) {
			return st.refreshTokens.DeleteExpired(ctx, clk.Now())
		},
	}}
	if mem, ok := limiterStore.(*memory.RateLimitStore); ok {
		tasks = append(tasks, janitor.Task{Name: "stale_rate_windows", Run: mem.Purge})
	}
	janitor.New(cfg.JanitorInterval, logger.Component("janitor"), tasks...).Start(ctx)

	e := api.NewRouter(api.Deps{
		Config:    cfg,
		Log:       logger.Component("http"),
		Auth:      authService,
		Status:    statusService,
		Limiter:   limiter,
		Readiness: st.readiness,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreBackend).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := closeLimiter(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
	if err := st.close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("store close")
	}

	log.Info().Msg("server stopped")
	return serveErr
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	if cfg.StoreBackend == config.StoreMemory {
		log.Warn().Msg("using in-memory stores; data is lost on restart")
		return &stores{
			users:         memory.NewAuthRepository(),
			refreshTokens: memory.NewRefreshTokenRepository(),
			statusChecks:  memory.NewStatusCheckRepository(),
			readiness:     map[string]handler.Pinger{},
			close:         func(context.Context) error { return nil },
		}, nil
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return nil, err
	}

	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := mongodb.EnsureIndexes(indexCtx, db); err != nil {
		if errors.Is(err, mongodb.ErrRequiredIndex) {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		log.Error().Err(err).Msg("index bootstrap incomplete; expired registry rows rely on the janitor")
	}

	return &stores{
		users:         mongodb.NewAuthRepository(db),
		refreshTokens: mongodb.NewRefreshTokenRepository(db),
		statusChecks:  mongodb.NewStatusCheckRepository(db),
		readiness:     map[string]handler.Pinger{"mongodb": mongodb.Ping(db)},
		close:         client.Disconnect,
	}, nil
}

// openLimiterStore picks Redis when REDIS_ADDR is set and falls back to
// process-local counters otherwise.
func openLimiterStore(
	ctx context.Context,
	cfg *config.Config,
	clk clock.Clock,
	readiness map[string]handler.Pinger,
) (ports.RateLimitStore, func() error, error) {
	if cfg.Redis.Addr == "" {
		return memory.NewRateLimitStore(clk), func() error { return nil }, nil
	}

	client, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	readiness["redis"] = redisdb.Ping(client)
	return redisdb.NewRateLimitStore(client), client.Close, nil
}
