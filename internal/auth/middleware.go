package auth

import (
	"net/http"
	"strings"

	"github.com/tradewind-erp/tradewind/internal/platform/httpx"
	"github.com/tradewind-erp/tradewind/internal/shared"
)

// Middleware resolves the tenant identity from the Authorization header
// and stores it in the request context. Everything behind it can assume
// a verified tenant id.
func Middleware(tokens *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				httpx.RespondError(w, shared.ErrUnauthorized)
				return
			}
			identity, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				httpx.RespondError(w, shared.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(shared.ContextWithIdentity(r.Context(), identity)))
		})
	}
}
