package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
)

type contextKey string

const userIDKey contextKey = "userID"

// authMiddleware validates the bearer token and stores the token subject
// as the acting user ID
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			writeJSONError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		token, err := jwt.ParseSigned(raw, []jose.SignatureAlgorithm{jose.HS256})
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "malformed token")
			return
		}

		var claims jwt.Claims
		if err := token.Claims([]byte(s.cfg.JWTSecret), &claims); err != nil {
			writeJSONError(w, http.StatusUnauthorized, "invalid token signature")
			return
		}
		if err := claims.Validate(jwt.Expected{Time: time.Now()}); err != nil {
			writeJSONError(w, http.StatusUnauthorized, "token expired")
			return
		}
		if claims.Subject == "" {
			writeJSONError(w, http.StatusUnauthorized, "token has no subject")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userIDFrom returns the authenticated user ID placed by authMiddleware
func userIDFrom(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}
