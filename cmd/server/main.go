package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/RenierDuminy/CTFDA-scoring/internal/api"
	"github.com/RenierDuminy/CTFDA-scoring/internal/factory"
	redisstorage "github.com/RenierDuminy/CTFDA-scoring/internal/storage/redis"
)

const autoFlushInterval = 30 * time.Second

func main() {
	// Load .env if present; real environment wins
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
		RosterURL:   os.Getenv("ROSTER_URL"),
		SinkURL:     os.Getenv("SINK_URL"),
	}

	if quota := os.Getenv("STORAGE_QUOTA_BYTES"); quota != "" {
		n, err := strconv.ParseInt(quota, 10, 64)
		if err != nil {
			logger.Error("invalid STORAGE_QUOTA_BYTES", slog.String("value", quota))
			os.Exit(1)
		}
		cfg.StorageQuotaBytes = n
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Recover timer state from the previous run
	app.MatchTimer.Restore(ctx)

	// Run the restoration protocol in the background. The gate blocks until
	// a client resolves the decision over the API, so the server must be
	// serving before it can complete.
	go func() {
		restoreCtx := ctx
		if timeout := os.Getenv("RESTORE_TIMEOUT"); timeout != "" {
			d, err := time.ParseDuration(timeout)
			if err != nil {
				logger.Warn("invalid RESTORE_TIMEOUT, ignoring", slog.String("value", timeout))
			} else {
				var cancelRestore context.CancelFunc
				restoreCtx, cancelRestore = context.WithTimeout(ctx, d)
				defer cancelRestore()
			}
		}

		restored, err := app.Manager.Restore(restoreCtx, app.Gate)
		if err != nil {
			logger.Warn("restore not completed, starting fresh", slog.String("error", err.Error()))
		} else if restored {
			logger.Info("previous session restored")
		}

		// Warm the roster cache once the session question is settled
		if _, err := app.RosterService.Teams(ctx); err != nil {
			logger.Warn("roster warm-up failed", slog.String("error", err.Error()))
		}
	}()

	// Background loops: periodic persistence and timer ticks
	go app.Manager.RunAutoFlush(ctx, autoFlushInterval)
	go app.MatchTimer.Run(ctx)
	go app.IntervalTimer.Run(ctx)

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		Manager:       app.Manager,
		Gate:          app.Gate,
		Store:         app.Store,
		MatchTimer:    app.MatchTimer,
		IntervalTimer: app.IntervalTimer,
		RosterService: app.RosterService,
		Submitter:     app.Submitter,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("value", port))
			os.Exit(1)
		}
		serverConfig.Port = n
	}
	server := api.NewServer(router, serverConfig, logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
		// One last flush so acknowledged state survives the restart
		if !app.Manager.Flush(context.Background()) {
			logger.Warn("final flush failed")
		}
	}

	logger.Info("server stopped")
}
