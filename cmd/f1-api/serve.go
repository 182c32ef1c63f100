package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/f1dash/f1-data-service/pkg/cache"
	"github.com/f1dash/f1-data-service/pkg/logging"
	"github.com/f1dash/f1-data-service/pkg/service"
	"github.com/f1dash/f1-data-service/pkg/upstream/ergast"
	"github.com/f1dash/f1-data-service/pkg/upstream/sessions"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the F1 data API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg := resolveConfig()

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
	})

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	// A dead cache store is not fatal: the store degrades every
	// operation to miss/failure and the service runs uncached.
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.RedisAddr).
			Msg("Redis unreachable at startup, running uncached until it returns")
	} else {
		logger.Info().Str("addr", cfg.RedisAddr).Msg("Connected to Redis")
	}
	cancel()

	timeout := time.Duration(cfg.UpstreamTimeoutSeconds) * time.Second
	svc := service.New(service.Config{
		Store:     cache.NewStore(redisClient),
		Standings: ergast.NewClient(cfg.StandingsBaseURL, timeout),
		Sessions:  sessions.NewClient(cfg.SessionsBaseURL, timeout),
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           newServer(svc).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("Starting F1 data API server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
