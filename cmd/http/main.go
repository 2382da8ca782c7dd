package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"product-api/internal/config"
	"product-api/internal/database"
	handlerhttp "product-api/internal/handler/http"
	"product-api/internal/logger"
	middlewarehttp "product-api/internal/middleware/http"
	"product-api/internal/repository"
	"product-api/internal/service"
	"product-api/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.Instance()
	cfg := config.Instance()

	shutdownTracer, err := telemetry.Instance(context.Background(), cfg)
	if err != nil {
		os.Exit(1)
	}
	defer shutdownTracer()

	db, err := database.Instance(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Error("Failed to connect to MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wiring
	productRepo := repository.NewProductRepository(db.Database)
	productService := service.NewProductService(productRepo)
	productHandler := handlerhttp.NewProductHandler(productService)

	healthService := service.NewHealthService(db.Client)
	healthHandler := handlerhttp.NewHealthHandler(healthService)

	// Routing
	mux := http.NewServeMux()
	mux.HandleFunc("POST /products/{$}", productHandler.Create)
	mux.HandleFunc("GET /products/{$}", productHandler.List)
	mux.HandleFunc("GET /products/{id}", productHandler.GetByID)
	mux.HandleFunc("PUT /products/{id}", productHandler.Update)
	mux.HandleFunc("DELETE /products/{id}", productHandler.Delete)
	mux.HandleFunc("GET /health", healthHandler.Check)

	server := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      middlewarehttp.Trace(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP server running", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	db.Disconnect(shutdownCtx)
}
