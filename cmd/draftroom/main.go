package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/draft/autopick"
	"github.com/mcdev12/draftroom/internal/draft/clock"
	"github.com/mcdev12/draftroom/internal/draft/engine"
	"github.com/mcdev12/draftroom/internal/draft/gateway"
	"github.com/mcdev12/draftroom/internal/draft/outbox"
	"github.com/mcdev12/draftroom/internal/draft/store"
	"github.com/mcdev12/draftroom/internal/draft/store/postgres"
	redisstore "github.com/mcdev12/draftroom/internal/draft/store/redis"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found; using environment as-is")
	}
	setupLogging()

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("draftroom exited with error")
	}
}

func setupLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	if getEnv("LOG_PRETTY", "") != "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		return err
	}

	// The outbox lives in Postgres regardless of which store backend serves
	// draft state.
	pool, err := setupDatabase(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	st, err := setupStore(ctx, pool)
	if err != nil {
		return err
	}

	outboxRepo := outbox.NewRepository(pool)

	eng := engine.NewEngine(st, outboxRepo, autopick.NewBestAvailable(), engine.DefaultConfig())
	scheduler := clock.NewScheduler(st, eng, clock.DefaultConfig())
	eng.SetNotifier(scheduler)

	jsConfig := outbox.DefaultJetStreamConfig()
	jsConfig.URL = getEnv("NATS_URL", jsConfig.URL)
	publisher, err := outbox.NewJetStreamPublisher(jsConfig)
	if err != nil {
		return err
	}
	defer publisher.Close()

	relay := outbox.NewWorker(outboxRepo, publisher, outbox.DefaultWorkerConfig())
	if err := relay.Start(ctx); err != nil {
		return err
	}
	defer relay.Stop()

	sequencer := gateway.NewSequencer(0)
	connections := gateway.NewConnectionManager(gateway.DefaultConnectionConfig(), sequencer, eng)
	timers := gateway.NewTimerBroadcaster(connections, nil)

	consumerConfig := gateway.DefaultConsumerConfig()
	consumerConfig.URL = jsConfig.URL
	consumer, err := gateway.NewEventConsumer(connections, sequencer, timers, consumerConfig)
	if err != nil {
		return err
	}
	defer consumer.Stop()

	go connections.Start(ctx)
	go timers.Run(ctx)
	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("event consumer stopped")
			stop()
		}
	}()
	go func() {
		if err := scheduler.Run(ctx); err != nil {
			log.Error().Err(err).Msg("clock scheduler stopped")
			stop()
		}
	}()

	wsHandler := gateway.NewWebSocketHandler(connections)
	admin := NewAdminHandler(st, eng, config.DefaultSettings())
	server := setupServer(wsHandler, admin)

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("draftroom server listening")
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	return nil
}

// setupStore selects the draft state backend. Postgres is the default;
// STORE_BACKEND=redis switches to the Redis store for latency-sensitive
// deployments.
func setupStore(ctx context.Context, pool *pgxpool.Pool) (store.Store, error) {
	switch backend := getEnv("STORE_BACKEND", "postgres"); backend {
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		})
		st, err := redisstore.NewStore(&redisstore.Config{RedisClient: client})
		if err != nil {
			return nil, err
		}
		log.Info().Str("backend", backend).Msg("draft store initialized")
		return st, nil
	default:
		log.Info().Str("backend", "postgres").Msg("draft store initialized")
		return postgres.NewStore(pool), nil
	}
}
