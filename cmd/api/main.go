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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catclassifier/internal/api"
	"catclassifier/internal/config"
	"catclassifier/internal/predictor"
	"catclassifier/internal/registry"
	"catclassifier/pkg/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := utils.Logger()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	if cfg.APIKey == "" {
		logger.Warn("ML_API_KEY not set, API will accept any requests")
	} else {
		logger.Info("API key authentication enabled")
	}

	reg := registry.New(cfg.ModelDir, logger)
	if err := reg.Refresh(context.Background()); err != nil {
		logger.Error("Some models failed to load", zap.Error(err))
	}
	if reg.Len() > 0 {
		logger.Info("Models ready", zap.Strings("versions", reg.Versions()))
	}
	svc := predictor.NewService(reg, cfg.DefaultVersion, logger)

	r := api.Setup(svc, api.RouterConfig{APIKey: cfg.APIKey, CORSOrigins: cfg.CORSOrigins}, logger)
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
	return nil
}
