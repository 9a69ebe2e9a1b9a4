package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"cobecium/server/internal/db"
	"cobecium/server/internal/httpapi"
	"cobecium/server/internal/ingest"
	"cobecium/server/internal/metrics"
	"cobecium/server/internal/prefs"
)

func main() {
	_ = godotenv.Load(".env")

	addr := envOr("HTTP_ADDR", ":8080")
	logLevel := envOr("LOG_LEVEL", "info")
	logFormat := envOr("LOG_FORMAT", "json")
	databaseURL := envOr("DATABASE_URL", "")
	redisAddr := envOr("REDIS_ADDR", "")
	ingestSourceURL := envOr("INGEST_SOURCE_URL", "")

	logger := httpapi.NewLogger(logLevel, logFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *db.Pool
	if databaseURL != "" {
		p, err := db.Open(ctx, databaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer p.Close()
		pool = p
	}

	var rdb *redis.Client
	if redisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: envOr("REDIS_PASSWORD", ""),
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Str("addr", redisAddr).Msg("redis unreachable, preference cache disabled")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	// Preferences go through Postgres when a pool exists, fronted by a Redis
	// cache when one is reachable. Without a database everything lives in
	// process memory.
	var store prefs.Store
	if pool != nil {
		store = prefs.NewPostgresStore(pool.Queries())
	} else {
		store = prefs.NewMemoryStore()
	}
	if rdb != nil {
		store = prefs.NewCachedStore(store, rdb, 5*time.Minute)
	}

	m := metrics.New()

	if pool != nil {
		worker := ingest.New(logger, pool.Queries(), ingest.Options{
			DefaultSource: ingestSourceURL,
			Metrics:       m,
		})
		go worker.Run(ctx)
	}

	h := httpapi.NewHandler(logger, pool, store, m)
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("cobecium listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info().Msg("shutdown complete")
}

func envOr(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
