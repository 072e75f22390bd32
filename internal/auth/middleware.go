package auth

import (
	"log/slog"
	"net/http"

	errors "github.com/reyada-homecare/payments/internal"
	"github.com/reyada-homecare/payments/internal/transport"
)

// Middleware verifies bearer tokens and threads the caller's identity and
// session into the request context.
type Middleware struct {
	transport.BaseHandler
	verifier *TokenVerifier
	logger   *slog.Logger
}

func NewMiddleware(verifier *TokenVerifier, logger *slog.Logger) *Middleware {
	return &Middleware{
		BaseHandler: transport.BaseHandler{Logger: logger},
		verifier:    verifier,
		logger:      logger,
	}
}

func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.ExtractTokenFromHeader(r)
		if token == "" {
			m.HandleError(w, errors.NewUnauthorizedError("authentication required", errors.ErrCodeInvalidToken))
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			m.logger.Warn("token verification failed", "error", err)
			m.HandleError(w, errors.ErrInvalidToken)
			return
		}

		ctx := ContextWithClaims(r.Context(), claims)
		ctx = errors.ContextWithUserID(ctx, claims.UserID)
		if claims.SessionID != "" {
			ctx = errors.ContextWithSessionID(ctx, claims.SessionID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePermission guards a route with a permission claim check. It must
// run after RequireAuth.
func (m *Middleware) RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				m.HandleError(w, errors.NewUnauthorizedError("authentication required", errors.ErrCodeInvalidToken))
				return
			}

			if !claims.HasPermission(permission) {
				m.logger.Warn("permission denied",
					"user_id", claims.UserID,
					"permission", permission)
				m.HandleError(w, errors.NewForbiddenError("missing required permission", errors.ErrCodeMissingPermission))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
