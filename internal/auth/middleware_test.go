package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pleaderai/backend/internal/apperr"
)

func TestAuthenticateMiddleware(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store)
	issuer := NewTokenIssuer("test-secret", time.Hour)

	user, err := svc.Register(context.Background(), "Asha Rao", "asha@example.com", "password123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := issuer.Issue(user.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	staleToken, err := issuer.Issue("deleted-user-id")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	mw := NewMiddleware(issuer, svc)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := UserFromContext(r.Context())
		if u == nil {
			t.Error("no user in context")
			return
		}
		if u.ID != user.ID {
			t.Errorf("got user %q, want %q", u.ID, user.ID)
		}
		w.WriteHeader(http.StatusOK)
	})
	handler := mw.Authenticate(next)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer " + token, http.StatusOK, ""},
		{"no header", "", http.StatusUnauthorized, apperr.ErrUnauthorized.Error()},
		{"not bearer", "Basic abc123", http.StatusUnauthorized, apperr.ErrUnauthorized.Error()},
		{"garbage token", "Bearer nope", http.StatusUnauthorized, "invalid token"},
		{"valid token for deleted user", "Bearer " + staleToken, http.StatusUnauthorized, "user not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("got body %q, want it to mention %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}
