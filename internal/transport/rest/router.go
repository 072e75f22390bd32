package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/reyada-homecare/payments/internal/auth"
	"github.com/reyada-homecare/payments/internal/gateway"
	"github.com/reyada-homecare/payments/internal/payment"
	"github.com/reyada-homecare/payments/internal/transport/middleware"
	"github.com/reyada-homecare/payments/internal/transport/swagger"
)

func RegisterAllRoutes(router *chi.Mux, registry *gateway.Registry, authMiddleware *auth.Middleware, paymentHandler *payment.Handler, gatewayHandler *gateway.Handler, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(registry)

	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Gateway inspection routes (no auth required)
		if gatewayHandler != nil {
			r.Get("/gateways", gatewayHandler.ListGateways)
			r.Get("/gateways/optimal", gatewayHandler.OptimalGateway)
		}

		if paymentHandler != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authMiddleware.RequireAuth)

				pr.Route("/payments", func(pmr chi.Router) {
					pmr.Get("/", paymentHandler.GetHistory)        // GET /payments
					pmr.Get("/current", paymentHandler.GetCurrent) // GET /payments/current
					pmr.Get("/{paymentId}/status", paymentHandler.GetStatus)

					// Mutating routes with permission protection
					pmr.Group(func(mr chi.Router) {
						mr.Use(authMiddleware.RequirePermission(auth.PermissionProcessPayments))
						mr.Post("/", paymentHandler.ProcessPayment) // POST /payments
						mr.Post("/{id}/retry", paymentHandler.RetryPayment)
					})

					pmr.Group(func(mr chi.Router) {
						mr.Use(authMiddleware.RequirePermission(auth.PermissionCancelPayments))
						mr.Post("/{id}/cancel", paymentHandler.CancelPayment)
					})

					pmr.Group(func(mr chi.Router) {
						mr.Use(authMiddleware.RequirePermission(auth.PermissionRefundPayments))
						mr.Post("/refund", paymentHandler.RefundPayment)
					})
				})
			})
		}
	})
}
