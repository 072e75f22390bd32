package payment

import (
	errors "github.com/reyada-homecare/payments/internal"
	"github.com/reyada-homecare/payments/internal/core/common/validation"
	paymentmodel "github.com/reyada-homecare/payments/internal/core/datamodel/payment"
)

// Currencies the billing desk can charge in.
const (
	CurrencyAED = "AED"
	CurrencyUSD = "USD"
)

var SupportedCurrencies = []string{CurrencyAED, CurrencyUSD}

// Payment method tags accepted on a request.
const (
	MethodCard         = "card"
	MethodBankTransfer = "bank_transfer"
	MethodWallet       = "wallet"
)

// PaymentRequest is one payment submission. It lives only for the duration
// of the call; the resulting transaction is what gets kept.
type PaymentRequest struct {
	Amount        float64               `json:"amount"`
	Currency      string                `json:"currency"`
	PatientID     string                `json:"patient_id"`
	ServiceID     string                `json:"service_id"`
	Description   string                `json:"description"`
	PaymentMethod string                `json:"payment_method"`
	GatewayID     string                `json:"gateway_id,omitempty"`
	Metadata      paymentmodel.Metadata `json:"metadata,omitempty"`
}

// RefundRequest asks the gateway to return funds for a processed payment.
type RefundRequest struct {
	PaymentID   string   `json:"payment_id"`
	Amount      *float64 `json:"amount,omitempty"`
	Reason      string   `json:"reason"`
	RequestedBy string   `json:"requested_by"`
}

// ValidationResult carries every violated constraint, not just the first.
// It is data, never an error value.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors,omitempty"`
}

// ValidatePaymentData checks a request against the submission rules. It is
// synchronous and side-effect free.
func ValidatePaymentData(req *PaymentRequest) ValidationResult {
	validator := validation.NewValidator()

	validator.Field("amount", req.Amount).Positive(errors.ErrCodeInvalidAmount)
	validator.Field("currency", req.Currency).OneOf(SupportedCurrencies, errors.ErrCodeInvalidCurrency)
	validator.Field("patient_id", req.PatientID).Required()
	validator.Field("service_id", req.ServiceID).Required()
	validator.Field("description", req.Description).Required()
	validator.Field("payment_method", req.PaymentMethod).Required()

	appErr := validator.Validate()
	if appErr == nil {
		return ValidationResult{IsValid: true}
	}

	var messages []string
	if details, ok := appErr.Details.(errors.ValidationErrors); ok {
		for _, ve := range details.Errors {
			messages = append(messages, ve.Message)
		}
	} else {
		messages = append(messages, appErr.Message)
	}

	return ValidationResult{IsValid: false, Errors: messages}
}

// MapExternalStatus converts a gateway-side status to the transaction
// status enum. Anything unrecognized stays pending.
func MapExternalStatus(status string) string {
	switch status {
	case "completed", "success", "succeeded":
		return paymentmodel.StatusCompleted
	case "failed", "declined":
		return paymentmodel.StatusFailed
	case "cancelled":
		return paymentmodel.StatusCancelled
	default:
		return paymentmodel.StatusPending
	}
}
