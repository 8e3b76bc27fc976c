package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/reelvault/config"
	HTTPAdapter "github.com/bnema/reelvault/internal/adapter/http"
	"github.com/bnema/reelvault/internal/adapter/mediatool/ffmpeg"
	s3store "github.com/bnema/reelvault/internal/adapter/objectstore/s3"
	"github.com/bnema/reelvault/internal/adapter/storage/postgres"
	sqlitestore "github.com/bnema/reelvault/internal/adapter/storage/sqlite"
	"github.com/bnema/reelvault/internal/adapter/storage/thumbdisk"
	"github.com/bnema/reelvault/internal/adapter/storage/thumbmem"
	"github.com/bnema/reelvault/internal/asset"
	"github.com/bnema/reelvault/internal/infrastructure/logger"
	"github.com/bnema/reelvault/internal/port"
	"github.com/bnema/reelvault/internal/service"
)

// metadataStore is what both database backends provide.
type metadataStore interface {
	port.VideoStore
	port.UserStore
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error.Printf("failed to load config: %v", err)
		os.Exit(1)
	}

	logger.Info.Printf("starting reelvault on port %d, public base=%s", cfg.Port, cfg.PublicBase)

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		logger.Error.Printf("failed to create data directory: %v", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.AssetsRoot, 0755); err != nil {
		logger.Error.Printf("failed to create assets directory: %v", err)
		os.Exit(1)
	}

	var store metadataStore
	switch cfg.DBDriver {
	case "postgres":
		store, err = postgres.NewStore(cfg.DBURL)
	default:
		store, err = sqlitestore.NewStore(cfg.DataDir)
	}
	if err != nil {
		logger.Error.Printf("failed to create store: %v", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	resolver := asset.Resolver{
		AssetsRoot: cfg.AssetsRoot,
		PublicBase: cfg.PublicBase,
		Bucket:     cfg.S3Bucket,
		Region:     cfg.S3Region,
	}

	var thumbnails port.ThumbnailStore
	switch cfg.ThumbStore {
	case "memory":
		thumbnails = thumbmem.NewStore()
	default:
		thumbnails, err = thumbdisk.NewStore(resolver)
		if err != nil {
			logger.Error.Printf("failed to create thumbnail store: %v", err)
			os.Exit(1)
		}
	}

	objects, err := s3store.NewStore(context.Background(), cfg.S3Bucket, cfg.S3Region)
	if err != nil {
		logger.Error.Printf("failed to create object store: %v", err)
		os.Exit(1)
	}

	mediaTool := ffmpeg.NewMediaTool()

	authSvc := service.NewAuthService(store, cfg.JWTSecret, cfg.TokenTTL)
	videoSvc := service.NewVideoService(store, thumbnails, objects, mediaTool, resolver,
		cfg.PublicBase, cfg.PresignTTL, cfg.FFmpegTimeout)

	server := HTTPAdapter.NewServer(authSvc, videoSvc, cfg.AssetsRoot,
		cfg.MaxThumbnailBytes, cfg.MaxVideoBytes)

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info.Printf("received %s, shutting down", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error.Printf("http shutdown error: %v", err)
		}

		logger.Info.Printf("shutdown complete")
	}()

	logger.Info.Printf("server listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error.Printf("server failed: %v", err)
		os.Exit(1)
	}
}
