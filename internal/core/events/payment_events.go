package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePaymentCompleted       = "payment.completed"
	EventTypePaymentFailed          = "payment.failed"
	EventTypePaymentCancelled       = "payment.cancelled"
	EventTypeRefundRequested        = "payment.refund_requested"
	EventTypeNotificationDispatched = "notification.dispatched"
)

type PaymentCompletedEvent struct {
	BaseEvent
	TransactionID string  `json:"transaction_id"`
	PaymentID     string  `json:"payment_id"`
	GatewayID     string  `json:"gateway_id"`
	PatientID     string  `json:"patient_id"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

func NewPaymentCompletedEvent(transactionID, paymentID, gatewayID, patientID string, amount float64, currency string) *PaymentCompletedEvent {
	return &PaymentCompletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentCompleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"transaction_id": transactionID,
				"payment_id":     paymentID,
				"gateway_id":     gatewayID,
				"patient_id":     patientID,
				"amount":         amount,
				"currency":       currency,
			},
		},
		TransactionID: transactionID,
		PaymentID:     paymentID,
		GatewayID:     gatewayID,
		PatientID:     patientID,
		Amount:        amount,
		Currency:      currency,
	}
}

type PaymentFailedEvent struct {
	BaseEvent
	TransactionID string  `json:"transaction_id"`
	PaymentID     string  `json:"payment_id"`
	GatewayID     string  `json:"gateway_id"`
	Amount        float64 `json:"amount"`
	FailureReason string  `json:"failure_reason"`
}

func NewPaymentFailedEvent(transactionID, paymentID, gatewayID string, amount float64, failureReason string) *PaymentFailedEvent {
	return &PaymentFailedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentFailed,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"transaction_id": transactionID,
				"payment_id":     paymentID,
				"gateway_id":     gatewayID,
				"amount":         amount,
				"failure_reason": failureReason,
			},
		},
		TransactionID: transactionID,
		PaymentID:     paymentID,
		GatewayID:     gatewayID,
		Amount:        amount,
		FailureReason: failureReason,
	}
}

type PaymentCancelledEvent struct {
	BaseEvent
	TransactionID string `json:"transaction_id"`
	CancelledBy   string `json:"cancelled_by"`
}

func NewPaymentCancelledEvent(transactionID, cancelledBy string) *PaymentCancelledEvent {
	return &PaymentCancelledEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentCancelled,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"transaction_id": transactionID,
				"cancelled_by":   cancelledBy,
			},
		},
		TransactionID: transactionID,
		CancelledBy:   cancelledBy,
	}
}

type RefundRequestedEvent struct {
	BaseEvent
	PaymentID   string   `json:"payment_id"`
	Amount      *float64 `json:"amount,omitempty"`
	Reason      string   `json:"reason"`
	RequestedBy string   `json:"requested_by"`
}

func NewRefundRequestedEvent(paymentID string, amount *float64, reason, requestedBy string) *RefundRequestedEvent {
	data := map[string]interface{}{
		"payment_id":   paymentID,
		"reason":       reason,
		"requested_by": requestedBy,
	}
	if amount != nil {
		data["amount"] = *amount
	}
	return &RefundRequestedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeRefundRequested,
			Timestamp: time.Now(),
			Data:      data,
		},
		PaymentID:   paymentID,
		Amount:      amount,
		Reason:      reason,
		RequestedBy: requestedBy,
	}
}
