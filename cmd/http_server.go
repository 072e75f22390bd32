package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reyada-homecare/payments/internal"
	"github.com/reyada-homecare/payments/internal/auth"
	"github.com/reyada-homecare/payments/internal/core/events"
	"github.com/reyada-homecare/payments/internal/gateway"
	"github.com/reyada-homecare/payments/internal/gatewayclient"
	"github.com/reyada-homecare/payments/internal/notification"
	"github.com/reyada-homecare/payments/internal/payment"
	"github.com/reyada-homecare/payments/internal/transport/rest"
	"github.com/reyada-homecare/payments/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config         *internal.Config
	Router         *chi.Mux
	Registry       *gateway.Registry
	PaymentHandler *payment.Handler
	GatewayHandler *gateway.Handler
	AuthMiddleware *auth.Middleware
	Logger         *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.Registry,
		deps.AuthMiddleware,
		deps.PaymentHandler,
		deps.GatewayHandler,
		deps.Config.Server.AllowedOrigins,
		deps.Logger,
	)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	appLogger := logger.LoggerWrapper()

	eventBus := events.NewEventBus(appLogger)

	registry := gateway.NewRegistry(config.Registry.Gateways, appLogger)
	feeCalculator := payment.NewFeeCalculator(registry, appLogger)

	gatewayClient := gatewayclient.NewClient(gatewayclient.Config{
		APIURL:  config.Gateway.APIURL,
		APIKey:  config.Gateway.APIKey,
		Timeout: config.Gateway.Timeout,
	}, appLogger)

	notifier := notification.NewService(eventBus, appLogger)
	sessionStore := payment.NewSessionStore()

	paymentService := payment.NewPaymentService(registry, feeCalculator, gatewayClient, notifier, sessionStore, eventBus, appLogger)
	paymentHandler := payment.NewHandler(paymentService, appLogger)
	gatewayHandler := gateway.NewHandler(registry, appLogger)

	verifier := auth.NewTokenVerifier(config.Security.JWTSecret)
	authMiddleware := auth.NewMiddleware(verifier, appLogger)

	return &Dependencies{
		Config:         config,
		Router:         chi.NewRouter(),
		Registry:       registry,
		PaymentHandler: paymentHandler,
		GatewayHandler: gatewayHandler,
		AuthMiddleware: authMiddleware,
		Logger:         appLogger,
	}, nil
}
