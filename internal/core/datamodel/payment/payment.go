package payment

import (
	"encoding/json"
	"time"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Audit trail actions recorded on a transaction.
const (
	AuditPaymentInitiated = "payment_initiated"
	AuditPaymentProcessed = "payment_processed"
	AuditPaymentCancelled = "payment_cancelled"
)

// AuditEntry is one append-only record of an action taken on a transaction.
type AuditEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Status    string    `json:"status"`
	Actor     string    `json:"actor"`
}

// Fees are computed once when the transaction is built and never
// recalculated afterwards. A retry produces a new transaction instead.
type Fees struct {
	ProcessingFee float64 `json:"processing_fee"`
	TotalAmount   float64 `json:"total_amount"`
}

type Timeline struct {
	InitiatedAt time.Time  `json:"initiated_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

// SecurityInfo carries the static processing flags attached to every
// transaction record.
type SecurityInfo struct {
	Encrypted    bool `json:"encrypted"`
	PCICompliant bool `json:"pci_compliant"`
	FraudChecked bool `json:"fraud_checked"`
}

// Metadata holds the optional clinical linkage identifiers on a request.
type Metadata struct {
	ClaimID         string `json:"claim_id,omitempty"`
	EpisodeID       string `json:"episode_id,omitempty"`
	AuthorizationID string `json:"authorization_id,omitempty"`
}

// PaymentTransaction is the record of one attempted payment. It is only
// ever mutated by appending audit entries and updating status; records are
// accumulated in the session history and never deleted.
type PaymentTransaction struct {
	ID              string          `json:"id"`
	PaymentID       string          `json:"payment_id"`
	GatewayID       string          `json:"gateway_id"`
	Amount          float64         `json:"amount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"payment_method"`
	PatientID       string          `json:"patient_id"`
	ServiceID       string          `json:"service_id"`
	Description     string          `json:"description"`
	Metadata        Metadata        `json:"metadata,omitempty"`
	Fees            Fees            `json:"fees"`
	Timeline        Timeline        `json:"timeline"`
	SecurityInfo    SecurityInfo    `json:"security_info"`
	AuditTrail      []AuditEntry    `json:"audit_trail"`
	GatewayResponse json.RawMessage `json:"gateway_response,omitempty"`
	FailureReason   *string         `json:"failure_reason,omitempty"`
}

// AppendAudit records an action and keeps the transaction status in step
// with the latest audit entry.
func (t *PaymentTransaction) AppendAudit(action, status, actor string) {
	t.AuditTrail = append(t.AuditTrail, AuditEntry{
		Timestamp: time.Now().UTC(),
		Action:    action,
		Status:    status,
		Actor:     actor,
	})
	t.Status = status
}

// LastAudit returns the most recent audit entry, or nil for an empty trail.
func (t *PaymentTransaction) LastAudit() *AuditEntry {
	if len(t.AuditTrail) == 0 {
		return nil
	}
	return &t.AuditTrail[len(t.AuditTrail)-1]
}
