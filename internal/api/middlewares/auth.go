package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/5w1tchy/passkit/internal/api/httpx"
	jwtutil "github.com/5w1tchy/passkit/internal/security/jwt"
)

// TokenParser is satisfied by *jwtutil.Signer.
type TokenParser interface {
	ParseAccess(token string) (*jwtutil.AccessClaims, error)
}

// RequireAdmin verifies a Bearer JWT with role=admin and injects the subject.
func RequireAdmin(p TokenParser, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Authorization")
		if raw == "" {
			httpx.ErrorCode(w, http.StatusUnauthorized, "unauthorized", "missing Authorization header")
			return
		}
		tokenStr, err := bearer(raw)
		if err != nil {
			httpx.ErrorCode(w, http.StatusUnauthorized, "unauthorized", "invalid Authorization header")
			return
		}
		claims, err := p.ParseAccess(tokenStr)
		if err != nil {
			httpx.ErrorCode(w, http.StatusUnauthorized, "unauthorized", "invalid token")
			return
		}
		if claims.Role != jwtutil.RoleAdmin {
			httpx.ErrorCode(w, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), claims.Subject)))
	})
}

func bearer(h string) (string, error) {
	scheme, tok, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tok) == "" {
		return "", errors.New("no bearer")
	}
	return strings.TrimSpace(tok), nil
}
