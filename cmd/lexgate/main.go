package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexgate/lexgate/internal/app"
	"github.com/lexgate/lexgate/internal/auth"
	"github.com/lexgate/lexgate/internal/directory"
	"github.com/lexgate/lexgate/internal/observability"
	"github.com/lexgate/lexgate/internal/platform/cache"
	"github.com/lexgate/lexgate/internal/platform/db"
	"github.com/lexgate/lexgate/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	var dir directory.Directory
	if cfg.PGDSN != "" {
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		dir = directory.NewPGDirectory(pool)
	} else {
		memDir, err := directory.NewMemoryDirectory(directory.DemoUsers())
		if err != nil {
			logger.Error("seed demo directory", slog.Any("error", err))
			os.Exit(1)
		}
		dir = memDir
		logger.Info("using in-memory demo directory")
	}

	var sessions auth.SessionStore
	if cfg.RedisAddr != "" {
		redisClient, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Error("connect redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		sessions = auth.NewRedisSessionStore(redisClient, cfg.SessionIdleTimeout)
	} else {
		sessions = auth.NewMemorySessionStore(cfg.SessionIdleTimeout)
	}

	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL())
	authService := auth.NewService(dir, tokens, sessions)
	authHandler := auth.NewHandler(logger, authService, cfg.IsProduction())
	authMiddleware := auth.Middleware{Logger: logger, Tokens: tokens, Sessions: sessions}

	usersHandler := users.NewHandler(logger, users.NewService(dir))
	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		AuthHandler:    authHandler,
		AuthMiddleware: authMiddleware,
		UsersHandler:   usersHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
