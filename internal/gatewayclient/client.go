package gatewayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ExecuteRequest is the payload sent to the gateway-execution service. The
// service internals are opaque; this client only speaks its JSON boundary.
type ExecuteRequest struct {
	PaymentID     string            `json:"payment_id"`
	GatewayID     string            `json:"gateway_id"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	PatientID     string            `json:"patient_id"`
	ServiceID     string            `json:"service_id"`
	Description   string            `json:"description"`
	PaymentMethod string            `json:"payment_method"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

type ExecuteResponse struct {
	Status          string          `json:"status"`
	TransactionID   string          `json:"transaction_id"`
	ProcessedAt     time.Time       `json:"processed_at"`
	GatewayResponse json.RawMessage `json:"gateway_response,omitempty"`
	ErrorMessage    string          `json:"error_message,omitempty"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type RefundRequest struct {
	PaymentID   string   `json:"payment_id"`
	Amount      *float64 `json:"amount,omitempty"`
	Reason      string   `json:"reason"`
	RequestedBy string   `json:"requested_by"`
}

type RefundResponse struct {
	RefundID    string    `json:"refund_id"`
	PaymentID   string    `json:"payment_id"`
	Status      string    `json:"status"`
	Amount      float64   `json:"amount"`
	ProcessedAt time.Time `json:"processed_at"`
}

type Config struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

// Client talks to the external gateway-execution service over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: cfg.APIURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// ProcessPayment executes the transfer for an initiated transaction.
func (c *Client) ProcessPayment(ctx context.Context, req *ExecuteRequest) (*ExecuteResponse, error) {
	c.logger.Info("sending payment to gateway",
		"payment_id", req.PaymentID,
		"gateway_id", req.GatewayID,
		"amount", req.Amount,
		"currency", req.Currency)

	var resp ExecuteResponse
	if err := c.post(ctx, "/v1/payments", req, &resp); err != nil {
		c.logger.Error("gateway payment request failed",
			"error", err,
			"payment_id", req.PaymentID,
			"gateway_id", req.GatewayID)
		return nil, err
	}

	c.logger.Info("gateway responded",
		"payment_id", req.PaymentID,
		"status", resp.Status,
		"gateway_transaction_id", resp.TransactionID)

	return &resp, nil
}

// GetPaymentStatus fetches the gateway-side status of a payment.
func (c *Client) GetPaymentStatus(ctx context.Context, paymentID string) (*StatusResponse, error) {
	url := fmt.Sprintf("%s/v1/payments/%s/status", c.baseURL, paymentID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation error: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gateway API error: status %d, response: %s", resp.StatusCode, string(body))
	}

	var statusResp StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&statusResp); err != nil {
		return nil, fmt.Errorf("response unmarshal error: %w", err)
	}

	return &statusResp, nil
}

// ProcessRefund asks the gateway to refund a payment, in full when no
// amount is given. Refund bookkeeping stays on the gateway side.
func (c *Client) ProcessRefund(ctx context.Context, req *RefundRequest) (*RefundResponse, error) {
	c.logger.Info("sending refund to gateway",
		"payment_id", req.PaymentID,
		"requested_by", req.RequestedBy)

	var resp RefundResponse
	if err := c.post(ctx, "/v1/refunds", req, &resp); err != nil {
		c.logger.Error("gateway refund request failed",
			"error", err,
			"payment_id", req.PaymentID)
		return nil, err
	}

	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("request creation error: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("response read error: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("gateway API error: status %d, response: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("response unmarshal error: %w", err)
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
