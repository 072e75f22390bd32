package payment

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	errors "github.com/reyada-homecare/payments/internal"
	paymentmodel "github.com/reyada-homecare/payments/internal/core/datamodel/payment"
	"github.com/reyada-homecare/payments/internal/gatewayclient"
	"github.com/reyada-homecare/payments/internal/transport"
)

type ServiceAPI interface {
	ProcessPayment(ctx context.Context, req *PaymentRequest) (*paymentmodel.PaymentTransaction, error)
	RetryPayment(ctx context.Context, transactionID string) (*paymentmodel.PaymentTransaction, error)
	RefundPayment(ctx context.Context, req *RefundRequest) (*gatewayclient.RefundResponse, error)
	CancelPayment(ctx context.Context, transactionID string) (*paymentmodel.PaymentTransaction, error)
	GetPaymentStatus(ctx context.Context, paymentID string) (*gatewayclient.StatusResponse, error)
	History(ctx context.Context) []paymentmodel.PaymentTransaction
	CurrentTransaction(ctx context.Context) (*paymentmodel.PaymentTransaction, bool)
}

type Handler struct {
	transport.BaseHandler
	PaymentService ServiceAPI
	Logger         *slog.Logger
}

func NewHandler(paymentService ServiceAPI, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler:    transport.BaseHandler{Logger: logger},
		PaymentService: paymentService,
		Logger:         logger,
	}
}

// ProcessPayment handles POST /api/v1/payments
func (h *Handler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("ProcessPayment: failed to parse request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	tx, err := h.PaymentService.ProcessPayment(r.Context(), &req)
	if err != nil {
		h.Logger.Error("ProcessPayment: service error", "error", err, "patient_id", req.PatientID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, tx)
}

// RetryPayment handles POST /api/v1/payments/{id}/retry
func (h *Handler) RetryPayment(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "id")
	if transactionID == "" {
		h.HandleError(w, errors.NewValidationError("transaction id is required", errors.ErrCodeValidationFailed))
		return
	}

	tx, err := h.PaymentService.RetryPayment(r.Context(), transactionID)
	if err != nil {
		h.Logger.Error("RetryPayment: service error", "error", err, "transaction_id", transactionID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("RetryPayment: retry completed",
		"original_transaction_id", transactionID,
		"new_transaction_id", tx.ID,
		"status", tx.Status)

	h.WriteJSON(w, http.StatusCreated, tx)
}

// CancelPayment handles POST /api/v1/payments/{id}/cancel
func (h *Handler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "id")
	if transactionID == "" {
		h.HandleError(w, errors.NewValidationError("transaction id is required", errors.ErrCodeValidationFailed))
		return
	}

	tx, err := h.PaymentService.CancelPayment(r.Context(), transactionID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tx)
}

// RefundPayment handles POST /api/v1/payments/refund
func (h *Handler) RefundPayment(w http.ResponseWriter, r *http.Request) {
	var req RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("RefundPayment: failed to parse request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	if req.PaymentID == "" {
		h.HandleError(w, errors.NewValidationError("payment_id is required", errors.ErrCodeValidationFailed))
		return
	}

	resp, err := h.PaymentService.RefundPayment(r.Context(), &req)
	if err != nil {
		h.Logger.Error("RefundPayment: service error", "error", err, "payment_id", req.PaymentID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// GetHistory handles GET /api/v1/payments
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	history := h.PaymentService.History(r.Context())
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": history,
		"count":        len(history),
	})
}

// GetCurrent handles GET /api/v1/payments/current
func (h *Handler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	tx, ok := h.PaymentService.CurrentTransaction(r.Context())
	if !ok {
		h.HandleError(w, errors.NewNotFoundError("no current transaction", errors.ErrCodeTransactionNotFound))
		return
	}
	h.WriteJSON(w, http.StatusOK, tx)
}

// GetStatus handles GET /api/v1/payments/{paymentId}/status
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentId")
	if paymentID == "" {
		h.HandleError(w, errors.NewValidationError("payment id is required", errors.ErrCodeValidationFailed))
		return
	}

	status, err := h.PaymentService.GetPaymentStatus(r.Context(), paymentID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, status)
}
