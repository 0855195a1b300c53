package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tzcomms/beem-callback-gateway/internal/callback_service/adapters/sink"
	"github.com/tzcomms/beem-callback-gateway/internal/callback_service/app"
	"github.com/tzcomms/beem-callback-gateway/internal/callback_service/repository/postgres"
	httptransport "github.com/tzcomms/beem-callback-gateway/internal/callback_service/transport/http"
	"github.com/tzcomms/beem-callback-gateway/internal/platform/config"
	"github.com/tzcomms/beem-callback-gateway/internal/platform/database"
	"github.com/tzcomms/beem-callback-gateway/internal/platform/logger"
	"github.com/tzcomms/beem-callback-gateway/internal/platform/messagebroker"
)

const serviceName = "callback_gateway"

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		slog.Error("Failed to load configuration", "service", serviceName, "error", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.LogLevel)
	appLogger.Info("Callback gateway starting...", "port", cfg.ServerPort)

	natsClient, err := messagebroker.NewNATSClient(cfg.NATSUrl, serviceName, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer natsClient.Close()
	appLogger.Info("Successfully connected to NATS")

	var notificationSink sink.NotifySink = sink.NewNATSSink(natsClient, cfg.NATSSubjectPrefix, appLogger)

	if cfg.LedgerEnabled {
		if cfg.PostgresDSN == "" {
			appLogger.Error("Ledger enabled but POSTGRES_DSN is empty")
			os.Exit(1)
		}
		dbPool, err := database.NewDBPool(context.Background(), cfg.PostgresDSN)
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL for event ledger", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()
		appLogger.Info("Callback event ledger enabled")

		ledgerRepo := postgres.NewEventLedgerRepository(dbPool, appLogger)
		notificationSink = sink.NewLedgerSink(ledgerRepo, notificationSink, appLogger)
	}

	validate := validator.New()

	dispatcherOpts := []app.Option{}
	if cfg.UssdDefaultReply != "" {
		dispatcherOpts = append(dispatcherOpts, app.WithUssdDefaultText(cfg.UssdDefaultReply))
	}
	// USSD business menus plug in through app.WithUssdHandler; without one,
	// every USSD session is answered with the default terminate reply.
	dispatcher := app.NewDispatcher(notificationSink, validate, appLogger, dispatcherOpts...)

	webhookHandler := httptransport.NewWebhookHandler(dispatcher, cfg.PaymentSecureToken, appLogger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	webhookHandler.RegisterRoutes(r)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "service": serviceName})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutdown signal received, draining...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", "error", err)
	}
	appLogger.Info("Callback gateway stopped")
}
