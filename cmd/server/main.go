package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kdduha/image-text-extractor/internal/config"
	"github.com/kdduha/image-text-extractor/internal/handler"
	"github.com/kdduha/image-text-extractor/internal/llm"
	"github.com/kdduha/image-text-extractor/internal/logging"
	"github.com/kdduha/image-text-extractor/internal/metrics"
	"github.com/kdduha/image-text-extractor/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	_ "github.com/kdduha/image-text-extractor/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Image Text Extractor API
// @version 1.0
// @description Forwards a base64-encoded image to a hosted model and returns the extracted text.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer logger.Sync()

	client, err := llm.New(ctx, cfg)
	if err != nil {
		logger.Fatal("model client init failed", zap.Error(err))
	}
	defer client.Close()

	e := handler.NewExtractHandler(logger, service.NewExtractService(logger, client))

	r := chi.NewRouter()
	r.Use([]func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		metrics.Middleware,
		middleware.Throttle(cfg.Server.ThrottleLimit),
		handler.Deadline(cfg.Server.Timeout),
	}...)

	r.Post("/extract", e.Extract)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("server started",
			zap.String("port", cfg.Server.Port),
			zap.String("provider", client.Name()),
			zap.String("model", client.Model()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}
