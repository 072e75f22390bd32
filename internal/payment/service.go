package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reyada-homecare/payments/internal"
	gatewaymodel "github.com/reyada-homecare/payments/internal/core/datamodel/gateway"
	paymentmodel "github.com/reyada-homecare/payments/internal/core/datamodel/payment"
	"github.com/reyada-homecare/payments/internal/core/events"
	"github.com/reyada-homecare/payments/internal/gateway"
	"github.com/reyada-homecare/payments/internal/gatewayclient"
	"github.com/reyada-homecare/payments/internal/notification"
)

// GatewayAPI is the boundary to the external gateway-execution service.
type GatewayAPI interface {
	ProcessPayment(ctx context.Context, req *gatewayclient.ExecuteRequest) (*gatewayclient.ExecuteResponse, error)
	GetPaymentStatus(ctx context.Context, paymentID string) (*gatewayclient.StatusResponse, error)
	ProcessRefund(ctx context.Context, req *gatewayclient.RefundRequest) (*gatewayclient.RefundResponse, error)
}

// NotifierAPI surfaces user-facing notifications, fire-and-forget.
type NotifierAPI interface {
	Notify(ctx context.Context, n notification.Notification)
}

// PaymentService orchestrates the transaction lifecycle: validation,
// gateway selection, fee calculation, the external call, and the
// session-scoped bookkeeping around it.
type PaymentService struct {
	registry *gateway.Registry
	fees     *FeeCalculator
	gateway  GatewayAPI
	notifier NotifierAPI
	store    *SessionStore
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewPaymentService(registry *gateway.Registry, fees *FeeCalculator, gatewayAPI GatewayAPI, notifier NotifierAPI, store *SessionStore, eventBus *events.EventBus, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		registry: registry,
		fees:     fees,
		gateway:  gatewayAPI,
		notifier: notifier,
		store:    store,
		eventBus: eventBus,
		logger:   logger,
	}
}

// ProcessPayment runs one payment attempt end to end. The returned
// transaction always reflects the gateway's response; a gateway-reported
// failure is a completed call with status failed, not an error. Any
// failure inside the flow is normalized to a gateway-typed structured
// error, surfaced through the notifier, and returned to the caller.
func (s *PaymentService) ProcessPayment(ctx context.Context, req *PaymentRequest) (*paymentmodel.PaymentTransaction, error) {
	tx, err := s.processPayment(ctx, req)
	if err != nil {
		appErr := s.normalizeError(err)
		s.notifier.Notify(ctx, notification.Notification{
			Title:       "Payment Failed",
			Description: appErr.GetDetailedMessage(),
			Variant:     notification.VariantDestructive,
		})
		return nil, appErr
	}

	if tx.Status == paymentmodel.StatusCompleted {
		s.notifier.Notify(ctx, notification.Notification{
			Title:       "Payment Successful",
			Description: fmt.Sprintf("Payment of %s %.2f processed successfully", tx.Currency, tx.Amount),
			Variant:     notification.VariantSuccess,
		})
	} else {
		reason := "payment was not completed by the gateway"
		if tx.FailureReason != nil {
			reason = *tx.FailureReason
		}
		s.notifier.Notify(ctx, notification.Notification{
			Title:       "Payment Failed",
			Description: reason,
			Variant:     notification.VariantDestructive,
		})
	}

	return tx, nil
}

func (s *PaymentService) processPayment(ctx context.Context, req *PaymentRequest) (*paymentmodel.PaymentTransaction, error) {
	result := ValidatePaymentData(req)
	if !result.IsValid {
		return nil, fmt.Errorf("payment validation failed: %s", strings.Join(result.Errors, ", "))
	}

	g, err := s.resolveGateway(req)
	if err != nil {
		return nil, err
	}

	sessionID := internal.SessionIDFromContext(ctx)
	actor := s.actor(ctx)

	tx := &paymentmodel.PaymentTransaction{
		ID:            "txn_" + uuid.NewString(),
		PaymentID:     "pay_" + uuid.NewString(),
		GatewayID:     g.ID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Status:        paymentmodel.StatusPending,
		PaymentMethod: req.PaymentMethod,
		PatientID:     req.PatientID,
		ServiceID:     req.ServiceID,
		Description:   req.Description,
		Metadata:      req.Metadata,
		Fees:          s.fees.CalculateFees(req.Amount, g.ID),
		Timeline:      paymentmodel.Timeline{InitiatedAt: time.Now().UTC()},
		SecurityInfo: paymentmodel.SecurityInfo{
			Encrypted:    true,
			PCICompliant: true,
			FraudChecked: true,
		},
	}
	tx.AppendAudit(paymentmodel.AuditPaymentInitiated, paymentmodel.StatusPending, actor)

	// publish pending state before the gateway call so observers can
	// render an in-progress indicator
	s.store.SetCurrent(sessionID, tx)

	s.logger.Info("payment initiated",
		"transaction_id", tx.ID,
		"payment_id", tx.PaymentID,
		"gateway_id", g.ID,
		"amount", req.Amount,
		"currency", req.Currency,
		"patient_id", req.PatientID)

	resp, err := s.gateway.ProcessPayment(ctx, &gatewayclient.ExecuteRequest{
		PaymentID:     tx.PaymentID,
		GatewayID:     g.ID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		PatientID:     req.PatientID,
		ServiceID:     req.ServiceID,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
		Metadata:      metadataMap(req.Metadata),
	})
	if err != nil {
		return nil, err
	}

	status := MapExternalStatus(resp.Status)
	tx.AppendAudit(paymentmodel.AuditPaymentProcessed, status, actor)

	processedAt := resp.ProcessedAt
	if processedAt.IsZero() {
		processedAt = time.Now().UTC()
	}
	tx.Timeline.ProcessedAt = &processedAt
	tx.GatewayResponse = resp.GatewayResponse
	if resp.ErrorMessage != "" {
		reason := resp.ErrorMessage
		tx.FailureReason = &reason
	}

	s.store.SetCurrent(sessionID, tx)
	s.store.Prepend(sessionID, tx)

	switch status {
	case paymentmodel.StatusCompleted:
		s.eventBus.Publish(ctx, events.NewPaymentCompletedEvent(tx.ID, tx.PaymentID, tx.GatewayID, tx.PatientID, tx.Amount, tx.Currency))
	case paymentmodel.StatusFailed:
		reason := ""
		if tx.FailureReason != nil {
			reason = *tx.FailureReason
		}
		s.eventBus.Publish(ctx, events.NewPaymentFailedEvent(tx.ID, tx.PaymentID, tx.GatewayID, tx.Amount, reason))
	}

	s.logger.Info("payment processed",
		"transaction_id", tx.ID,
		"status", tx.Status,
		"gateway_id", tx.GatewayID)

	return tx, nil
}

func (s *PaymentService) resolveGateway(req *PaymentRequest) (*gatewaymodel.PaymentGateway, error) {
	if req.GatewayID != "" {
		g, ok := s.registry.Get(req.GatewayID)
		if !ok {
			return nil, fmt.Errorf("gateway %s not found", req.GatewayID)
		}
		return g, nil
	}

	g, err := s.registry.OptimalFor(req.Amount, req.Currency, req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// RetryPayment re-runs a prior transaction end to end. A brand-new
// transaction id is produced; the original record is left untouched.
func (s *PaymentService) RetryPayment(ctx context.Context, transactionID string) (*paymentmodel.PaymentTransaction, error) {
	sessionID := internal.SessionIDFromContext(ctx)

	prior, ok := s.store.Find(sessionID, transactionID)
	if !ok {
		s.logger.Warn("retry requested for unknown transaction", "transaction_id", transactionID)
		return nil, internal.ErrTransactionNotFound
	}

	s.logger.Info("retrying payment",
		"original_transaction_id", prior.ID,
		"amount", prior.Amount,
		"currency", prior.Currency)

	req := &PaymentRequest{
		Amount:        prior.Amount,
		Currency:      prior.Currency,
		PatientID:     prior.PatientID,
		ServiceID:     prior.ServiceID,
		Description:   prior.Description,
		PaymentMethod: prior.PaymentMethod,
		Metadata:      prior.Metadata,
	}

	return s.ProcessPayment(ctx, req)
}

// RefundPayment delegates entirely to the gateway; local session state is
// not updated beyond the notification.
func (s *PaymentService) RefundPayment(ctx context.Context, req *RefundRequest) (*gatewayclient.RefundResponse, error) {
	requestedBy := req.RequestedBy
	if requestedBy == "" {
		requestedBy = s.actor(ctx)
	}

	resp, err := s.gateway.ProcessRefund(ctx, &gatewayclient.RefundRequest{
		PaymentID:   req.PaymentID,
		Amount:      req.Amount,
		Reason:      req.Reason,
		RequestedBy: requestedBy,
	})
	if err != nil {
		appErr := internal.NewGatewayError(internal.ErrCodeRefundFailed, "Refund processing failed", err)
		s.notifier.Notify(ctx, notification.Notification{
			Title:       "Refund Failed",
			Description: appErr.GetDetailedMessage(),
			Variant:     notification.VariantDestructive,
		})
		return nil, appErr
	}

	s.eventBus.Publish(ctx, events.NewRefundRequestedEvent(req.PaymentID, req.Amount, req.Reason, requestedBy))
	s.notifier.Notify(ctx, notification.Notification{
		Title:       "Refund Initiated",
		Description: fmt.Sprintf("Refund for payment %s has been submitted", req.PaymentID),
		Variant:     notification.VariantSuccess,
	})

	return resp, nil
}

// CancelPayment is purely local: it rewrites the matching history entry to
// cancelled without contacting the gateway. Whether the gateway would
// actually allow cancellation is not verified.
func (s *PaymentService) CancelPayment(ctx context.Context, transactionID string) (*paymentmodel.PaymentTransaction, error) {
	sessionID := internal.SessionIDFromContext(ctx)
	actor := s.actor(ctx)

	tx, ok := s.store.Update(sessionID, transactionID, func(t *paymentmodel.PaymentTransaction) {
		t.AppendAudit(paymentmodel.AuditPaymentCancelled, paymentmodel.StatusCancelled, actor)
	})
	if !ok {
		return nil, internal.ErrTransactionNotFound
	}

	s.eventBus.Publish(ctx, events.NewPaymentCancelledEvent(transactionID, actor))
	s.notifier.Notify(ctx, notification.Notification{
		Title:       "Payment Cancelled",
		Description: fmt.Sprintf("Transaction %s has been cancelled", transactionID),
		Variant:     notification.VariantDefault,
	})

	s.logger.Info("payment cancelled locally",
		"transaction_id", transactionID,
		"actor", actor)

	return tx, nil
}

// GetPaymentStatus passes through to the gateway.
func (s *PaymentService) GetPaymentStatus(ctx context.Context, paymentID string) (*gatewayclient.StatusResponse, error) {
	return s.gateway.GetPaymentStatus(ctx, paymentID)
}

// History returns the session's transactions, most recent first.
func (s *PaymentService) History(ctx context.Context) []paymentmodel.PaymentTransaction {
	return s.store.History(internal.SessionIDFromContext(ctx))
}

// CurrentTransaction returns the session's in-flight or last transaction.
func (s *PaymentService) CurrentTransaction(ctx context.Context) (*paymentmodel.PaymentTransaction, bool) {
	return s.store.Current(internal.SessionIDFromContext(ctx))
}

func (s *PaymentService) actor(ctx context.Context) string {
	if userID := internal.UserIDFromContext(ctx); userID != "" {
		return userID
	}
	return "system"
}

func (s *PaymentService) normalizeError(err error) *internal.AppError {
	if appErr, ok := internal.IsAppError(err); ok {
		return appErr
	}
	return internal.NewGatewayError(internal.ErrCodePaymentFailed, err.Error(), err)
}

func metadataMap(m paymentmodel.Metadata) map[string]string {
	out := make(map[string]string)
	if m.ClaimID != "" {
		out["claim_id"] = m.ClaimID
	}
	if m.EpisodeID != "" {
		out["episode_id"] = m.EpisodeID
	}
	if m.AuthorizationID != "" {
		out["authorization_id"] = m.AuthorizationID
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
