package auth_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/reyada-homecare/payments/internal"
	"github.com/reyada-homecare/payments/internal/auth"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

const testSecret = "test-secret-at-least-32-characters-long"

func signToken(claims *auth.Claims, secret string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	gomega.Expect(err).NotTo(gomega.HaveOccurred())
	return signed
}

func testClaims() *auth.Claims {
	return &auth.Claims{
		UserID:      "nurse-42",
		SessionID:   "session-7",
		Permissions: []string{auth.PermissionProcessPayments},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

var _ = ginkgo.Describe("TokenVerifier", func() {
	var verifier *auth.TokenVerifier

	ginkgo.BeforeEach(func() {
		verifier = auth.NewTokenVerifier(testSecret)
	})

	ginkgo.It("should accept a token signed with the shared secret", func() {
		claims, err := verifier.Verify(signToken(testClaims(), testSecret))
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(claims.UserID).To(gomega.Equal("nurse-42"))
		gomega.Expect(claims.SessionID).To(gomega.Equal("session-7"))
	})

	ginkgo.It("should reject a token signed with a different secret", func() {
		_, err := verifier.Verify(signToken(testClaims(), "another-secret-also-32-characters-x"))
		gomega.Expect(err).To(gomega.HaveOccurred())
	})

	ginkgo.It("should reject an expired token", func() {
		claims := testClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		_, err := verifier.Verify(signToken(claims, testSecret))
		gomega.Expect(err).To(gomega.HaveOccurred())
	})

	ginkgo.It("should reject garbage", func() {
		_, err := verifier.Verify("not.a.token")
		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})

var _ = ginkgo.Describe("Middleware", func() {
	var (
		middleware *auth.Middleware
		recorder   *httptest.ResponseRecorder
	)

	ginkgo.BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		middleware = auth.NewMiddleware(auth.NewTokenVerifier(testSecret), logger)
		recorder = httptest.NewRecorder()
	})

	ginkgo.Context("RequireAuth", func() {
		ginkgo.It("should thread user and session ids into the context", func() {
			var gotUser, gotSession string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser = internal.UserIDFromContext(r.Context())
				gotSession = internal.SessionIDFromContext(r.Context())
			})

			req := httptest.NewRequest("GET", "/api/v1/payments", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(testClaims(), testSecret))

			middleware.RequireAuth(next).ServeHTTP(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(gotUser).To(gomega.Equal("nurse-42"))
			gomega.Expect(gotSession).To(gomega.Equal("session-7"))
		})

		ginkgo.It("should reject requests without a bearer token", func() {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ginkgo.Fail("handler should not run")
			})

			req := httptest.NewRequest("GET", "/api/v1/payments", nil)
			middleware.RequireAuth(next).ServeHTTP(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should reject an invalid bearer token", func() {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ginkgo.Fail("handler should not run")
			})

			req := httptest.NewRequest("GET", "/api/v1/payments", nil)
			req.Header.Set("Authorization", "Bearer bogus")
			middleware.RequireAuth(next).ServeHTTP(recorder, req)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})

	ginkgo.Context("RequirePermission", func() {
		runGuarded := func(permission string, claims *auth.Claims) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			guarded := middleware.RequirePermission(permission)(next)

			req := httptest.NewRequest("POST", "/api/v1/payments/refund", nil)
			req = req.WithContext(auth.ContextWithClaims(req.Context(), claims))
			guarded.ServeHTTP(recorder, req)
		}

		ginkgo.It("should allow callers holding the permission", func() {
			claims := testClaims()
			claims.Permissions = []string{auth.PermissionRefundPayments}
			runGuarded(auth.PermissionRefundPayments, claims)

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should forbid callers missing the permission", func() {
			runGuarded(auth.PermissionRefundPayments, testClaims())

			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusForbidden))
		})
	})
})
