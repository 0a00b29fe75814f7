package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admin-console/internal/blobstore"
	"admin-console/internal/config"
	"admin-console/internal/handlers"
	"admin-console/internal/logger"
	"admin-console/internal/repository"
	"admin-console/internal/server"
	"admin-console/internal/service"
	"admin-console/internal/token"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional for local runs; real environment variables win.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Get(cfg.LogLevel)

	if cfg.JWTSecret == config.DefaultJWTSecret {
		log.Warnw("JWT_SECRET is the demo default; override it for any non-demo deployment")
	}

	// wire dependencies
	blob := openBlobStore(cfg, log)
	repos := repository.NewRepository(blob, log)
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	services := service.NewService(repos, tokens)
	apiHandler := handlers.NewHandler(services, cfg, log)

	// start HTTP server
	srv := &server.Server{}
	go func() {
		log.Infow("starting http server", "port", cfg.Port, "prefix", cfg.APIPrefix)
		if err := srv.Run(cfg.Port, apiHandler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()

	waitForShutdown(srv, log)
}

// openBlobStore builds the S3 store when a bucket is configured. Any setup
// failure downgrades to memory-only operation rather than aborting startup.
func openBlobStore(cfg *config.Config, log *logger.Logger) blobstore.Store {
	if cfg.S3Bucket == "" {
		log.Infow("blob persistence disabled; user list lives in memory only")
		return nil
	}

	store, err := blobstore.NewS3Store(context.Background(), blobstore.S3Options{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		ObjectKey:       cfg.S3ObjectKey,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		log.Warnw("failed to init blob store; continuing without persistence", "err", err)
		return nil
	}

	log.Infow("blob persistence enabled", "bucket", cfg.S3Bucket, "key", cfg.S3ObjectKey)
	return store
}

// waitForShutdown blocks on termination signals, then drains the server.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
