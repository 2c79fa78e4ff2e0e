package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pleaderai/backend/internal/apperr"
	"github.com/pleaderai/backend/internal/models"
)

type ctxKey string

const userKey ctxKey = "user"

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func UserFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

type Middleware struct {
	issuer  *TokenIssuer
	service *Service
}

func NewMiddleware(issuer *TokenIssuer, svc *Service) *Middleware {
	return &Middleware{issuer: issuer, service: svc}
}

// Authenticate resolves the bearer token to a user and stores it in the
// request context. Any failure yields a 401, never a panic.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := extractBearerToken(r)
		if tokenStr == "" {
			writeUnauthorized(w, apperr.ErrUnauthorized.Error())
			return
		}

		userID, err := m.issuer.Verify(tokenStr)
		if err != nil {
			switch err {
			case ErrTokenExpired:
				writeUnauthorized(w, "token expired")
			default:
				writeUnauthorized(w, "invalid token")
			}
			return
		}

		user, err := m.service.UserByID(r.Context(), userID)
		if err != nil {
			writeUnauthorized(w, "user not found")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
