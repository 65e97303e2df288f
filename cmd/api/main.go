package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tickethub/ticketing-api/internal/api"
	"github.com/tickethub/ticketing-api/internal/auth/password"
	"github.com/tickethub/ticketing-api/internal/auth/token"
	"github.com/tickethub/ticketing-api/internal/infrastructure/config"
	mongodb "github.com/tickethub/ticketing-api/internal/infrastructure/db/mongo"
	redisdb "github.com/tickethub/ticketing-api/internal/infrastructure/db/redis"
	"github.com/tickethub/ticketing-api/internal/ratelimit"
	"github.com/tickethub/ticketing-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet; this is the one place stderr is used directly.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	codec, err := token.NewCodec(token.Config{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("token codec configuration invalid")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	deps := api.Deps{
		DB:     db,
		Codec:  codec,
		Hasher: password.New(bcrypt.DefaultCost),
		Log:    log,
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		deps.Redis = rdb
		deps.LoginLimiter = ratelimit.NewRedis(rdb, cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login limiter backed by redis")
	} else {
		deps.LoginLimiter = ratelimit.NewMemory(cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)
		log.Info().Msg("login limiter is process-local; counters are not shared across instances")
	}

	e := api.NewRouter(deps)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("api listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
