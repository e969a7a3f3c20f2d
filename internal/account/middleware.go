package account

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/token"
)

const (
	msgMissingToken = "Missing bearer token."
	msgInvalidToken = "Invalid token."
)

// TokenVerifier parses and validates a bearer token.
type TokenVerifier interface {
	Parse(tokenString string) (*token.Claims, error)
}

type claimsKey struct{}

// ClaimsFromContext returns the claims stored by RequireBearer.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*token.Claims)
	return c, ok && c != nil
}

// RequireBearer rejects requests without a valid Authorization bearer token
// and exposes the verified claims to the wrapped handler.
func RequireBearer(v TokenVerifier, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	h := &Handler{logger: logger}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
				h.writeJSON(w, http.StatusUnauthorized, Fail(msgMissingToken, CodeInvalidCredentials))
				return
			}
			raw := strings.TrimSpace(auth[len("bearer "):])
			claims, err := v.Parse(raw)
			if err != nil {
				logger.Debugw("bearer token rejected", "err", err)
				h.writeJSON(w, http.StatusUnauthorized, Fail(msgInvalidToken, CodeInvalidCredentials))
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}
