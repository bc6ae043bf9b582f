/*
Package main is the entry point for the DuoChat server.

It is responsible for loading configuration, initializing the global logging system,
connecting the Postgres store, the optional Redis deny-list and the media host,
setting up the HTTP server, and gracefully handling operating system interrupt
signals (SIGINT, SIGTERM) to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"duochat/internal/app/auth"
	"duochat/internal/app/db"
	dbc "duochat/internal/app/db/sqlc"
	"duochat/internal/app/media"
	"duochat/internal/app/message"
	"duochat/internal/app/storage"
	"duochat/internal/app/user"
	"duochat/internal/configs"
	"duochat/internal/handler"
	"duochat/internal/pkg/auth/password"
	"duochat/internal/pkg/denylist"
	"duochat/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Dur("session_ttl", cfg.SessionTTL).
		Bool("deny_list", cfg.RedisAddr != "").
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to initialize database")
	}
	defer pool.Close()

	var deny denylist.DenyList = denylist.Noop{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logx.Fatal(err, "Failed to connect to Redis", "addr", cfg.RedisAddr)
		}
		deny = denylist.NewRedis(rdb)
	}

	host, err := storage.NewMediaHost(ctx, storage.ServiceConfig{
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3Region:          cfg.S3Region,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
		PublicBaseURL:     cfg.S3PublicBaseURL,
	})
	if err != nil {
		logx.Fatal(err, "Failed to initialize media host")
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := host.Ping(pingCtx); err != nil {
		logx.Error(err, "Media host check failed; image uploads may be rejected", "bucket", cfg.S3BucketName)
	} else {
		logx.Info("Media host reachable", "bucket", cfg.S3BucketName)
	}
	cancelPing()

	queries := dbc.New(pool)
	users := user.NewPostgresStore(queries)
	uploader := media.NewUploader(host)

	deps := &handler.AppDeps{
		Config: cfg,
		Auth: auth.NewService(users, password.NewBcrypt(password.Cost), uploader, deny, auth.Config{
			JWTSecret:  cfg.JWTSecret,
			SessionTTL: cfg.SessionTTL,
		}),
		Messages: message.NewService(users, message.NewPostgresStore(queries), uploader),
	}

	// Setup HTTP server and routes
	router := handler.Router(ctx, deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("DuoChat Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
