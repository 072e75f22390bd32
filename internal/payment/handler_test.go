package payment_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/reyada-homecare/payments/internal"
	paymentmodel "github.com/reyada-homecare/payments/internal/core/datamodel/payment"
	"github.com/reyada-homecare/payments/internal/gatewayclient"
	paymentpkg "github.com/reyada-homecare/payments/internal/payment"
)

type mockService struct {
	processError error
	retryError   error
	refundError  error
	cancelError  error
	statusError  error

	transaction *paymentmodel.PaymentTransaction
	refund      *gatewayclient.RefundResponse
	status      *gatewayclient.StatusResponse
	history     []paymentmodel.PaymentTransaction
	hasCurrent  bool
}

func (m *mockService) ProcessPayment(ctx context.Context, req *paymentpkg.PaymentRequest) (*paymentmodel.PaymentTransaction, error) {
	if m.processError != nil {
		return nil, m.processError
	}
	return m.transaction, nil
}

func (m *mockService) RetryPayment(ctx context.Context, transactionID string) (*paymentmodel.PaymentTransaction, error) {
	if m.retryError != nil {
		return nil, m.retryError
	}
	return m.transaction, nil
}

func (m *mockService) RefundPayment(ctx context.Context, req *paymentpkg.RefundRequest) (*gatewayclient.RefundResponse, error) {
	if m.refundError != nil {
		return nil, m.refundError
	}
	return m.refund, nil
}

func (m *mockService) CancelPayment(ctx context.Context, transactionID string) (*paymentmodel.PaymentTransaction, error) {
	if m.cancelError != nil {
		return nil, m.cancelError
	}
	return m.transaction, nil
}

func (m *mockService) GetPaymentStatus(ctx context.Context, paymentID string) (*gatewayclient.StatusResponse, error) {
	if m.statusError != nil {
		return nil, m.statusError
	}
	return m.status, nil
}

func (m *mockService) History(ctx context.Context) []paymentmodel.PaymentTransaction {
	return m.history
}

func (m *mockService) CurrentTransaction(ctx context.Context) (*paymentmodel.PaymentTransaction, bool) {
	return m.transaction, m.hasCurrent
}

func requestWithURLParam(method, target, key, value string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

var _ = ginkgo.Describe("PaymentHandler", func() {
	var (
		handler  *paymentpkg.Handler
		service  *mockService
		recorder *httptest.ResponseRecorder
	)

	ginkgo.BeforeEach(func() {
		service = &mockService{
			transaction: &paymentmodel.PaymentTransaction{
				ID:       "txn_abc",
				Status:   paymentmodel.StatusCompleted,
				Amount:   500,
				Currency: "AED",
			},
			refund: &gatewayclient.RefundResponse{RefundID: "ref_1", Status: "accepted"},
			status: &gatewayclient.StatusResponse{Status: "completed"},
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler = paymentpkg.NewHandler(service, logger)
		recorder = httptest.NewRecorder()
	})

	ginkgo.Context("ProcessPayment", func() {
		ginkgo.When("the request is valid", func() {
			ginkgo.It("should return the created transaction", func() {
				body, _ := json.Marshal(map[string]interface{}{
					"amount":         500,
					"currency":       "AED",
					"patient_id":     "PT-1001",
					"service_id":     "SVC-1",
					"description":    "Home visit",
					"payment_method": "card",
				})
				req := httptest.NewRequest("POST", "/api/v1/payments", bytes.NewBuffer(body))

				handler.ProcessPayment(recorder, req)

				gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusCreated))
				var tx paymentmodel.PaymentTransaction
				gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &tx)).To(gomega.Succeed())
				gomega.Expect(tx.ID).To(gomega.Equal("txn_abc"))
			})
		})

		ginkgo.When("the body is not JSON", func() {
			ginkgo.It("should return bad request", func() {
				req := httptest.NewRequest("POST", "/api/v1/payments", bytes.NewBufferString("not json"))

				handler.ProcessPayment(recorder, req)

				gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusBadRequest))
			})
		})

		ginkgo.When("the service reports a gateway failure", func() {
			ginkgo.It("should map the error to its HTTP status", func() {
				service.processError = internal.NewGatewayError(internal.ErrCodePaymentFailed, "gateway unreachable", nil)
				body, _ := json.Marshal(map[string]interface{}{"amount": 500})
				req := httptest.NewRequest("POST", "/api/v1/payments", bytes.NewBuffer(body))

				handler.ProcessPayment(recorder, req)

				gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusBadGateway))
			})
		})
	})

	ginkgo.Context("RetryPayment", func() {
		ginkgo.It("should retry by transaction id from the URL", func() {
			req := requestWithURLParam("POST", "/api/v1/payments/txn_abc/retry", "id", "txn_abc", nil)

			handler.RetryPayment(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusCreated))
		})

		ginkgo.It("should return 404 for an unknown transaction", func() {
			service.retryError = internal.ErrTransactionNotFound
			req := requestWithURLParam("POST", "/api/v1/payments/txn_x/retry", "id", "txn_x", nil)

			handler.RetryPayment(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusNotFound))
			gomega.Expect(recorder.Body.String()).To(gomega.ContainSubstring("Transaction not found"))
		})
	})

	ginkgo.Context("CancelPayment", func() {
		ginkgo.It("should cancel by transaction id from the URL", func() {
			req := requestWithURLParam("POST", "/api/v1/payments/txn_abc/cancel", "id", "txn_abc", nil)

			handler.CancelPayment(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))
		})
	})

	ginkgo.Context("RefundPayment", func() {
		ginkgo.It("should return the gateway's refund response", func() {
			body, _ := json.Marshal(map[string]interface{}{
				"payment_id": "pay_1",
				"reason":     "duplicate charge",
			})
			req := httptest.NewRequest("POST", "/api/v1/payments/refund", bytes.NewBuffer(body))

			handler.RefundPayment(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))
			var resp gatewayclient.RefundResponse
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &resp)).To(gomega.Succeed())
			gomega.Expect(resp.RefundID).To(gomega.Equal("ref_1"))
		})

		ginkgo.It("should reject a request without payment_id", func() {
			body, _ := json.Marshal(map[string]interface{}{"reason": "duplicate charge"})
			req := httptest.NewRequest("POST", "/api/v1/payments/refund", bytes.NewBuffer(body))

			handler.RefundPayment(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Context("GetHistory", func() {
		ginkgo.It("should return the transactions with a count", func() {
			service.history = []paymentmodel.PaymentTransaction{
				{ID: "txn_2"}, {ID: "txn_1"},
			}
			req := httptest.NewRequest("GET", "/api/v1/payments", nil)

			handler.GetHistory(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))
			var resp map[string]interface{}
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &resp)).To(gomega.Succeed())
			gomega.Expect(resp["count"]).To(gomega.BeEquivalentTo(2))
		})
	})

	ginkgo.Context("GetCurrent", func() {
		ginkgo.It("should return 404 when no transaction is current", func() {
			service.hasCurrent = false
			req := httptest.NewRequest("GET", "/api/v1/payments/current", nil)

			handler.GetCurrent(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusNotFound))
		})

		ginkgo.It("should return the current transaction", func() {
			service.hasCurrent = true
			req := httptest.NewRequest("GET", "/api/v1/payments/current", nil)

			handler.GetCurrent(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))
		})
	})

	ginkgo.Context("GetStatus", func() {
		ginkgo.It("should pass the gateway status through", func() {
			req := requestWithURLParam("GET", "/api/v1/payments/pay_1/status", "paymentId", "pay_1", nil)

			handler.GetStatus(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(recorder.Body.String()).To(gomega.ContainSubstring("completed"))
		})
	})
})
