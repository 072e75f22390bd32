package gateway

import (
	"log/slog"
	"net/http"
	"strconv"

	errors "github.com/reyada-homecare/payments/internal"
	"github.com/reyada-homecare/payments/internal/transport"
)

type Handler struct {
	transport.BaseHandler
	Registry *Registry
	Logger   *slog.Logger
}

func NewHandler(registry *Registry, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.BaseHandler{Logger: logger},
		Registry:    registry,
		Logger:      logger,
	}
}

// ListGateways handles GET /api/v1/gateways
func (h *Handler) ListGateways(w http.ResponseWriter, r *http.Request) {
	gateways := h.Registry.Active()
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"gateways": gateways,
		"count":    len(gateways),
	})
}

// OptimalGateway handles GET /api/v1/gateways/optimal
func (h *Handler) OptimalGateway(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amount, err := strconv.ParseFloat(q.Get("amount"), 64)
	if err != nil {
		h.HandleError(w, errors.NewValidationError("amount must be a number", errors.ErrCodeInvalidAmount))
		return
	}

	currency := q.Get("currency")
	method := q.Get("payment_method")
	if currency == "" || method == "" {
		h.HandleError(w, errors.NewValidationError("currency and payment_method are required", errors.ErrCodeValidationFailed))
		return
	}

	g, err := h.Registry.OptimalFor(amount, currency, method)
	if err != nil {
		h.HandleError(w, errors.NewNotFoundError("no gateway available for request", errors.ErrCodeNoGatewayAvailable))
		return
	}

	h.WriteJSON(w, http.StatusOK, g)
}
