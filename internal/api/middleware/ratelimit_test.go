package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pleaderai/backend/internal/apperr"
	"github.com/pleaderai/backend/internal/auth"
	"github.com/pleaderai/backend/internal/models"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestLimitEnforced(t *testing.T) {
	rl := NewRateLimiter(NewMemoryCounter())
	handler := rl.Limit("login", 3)(okHandler())

	for i := 1; i <= 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: got status %d, want 200", i, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("got status %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("got Retry-After %q, want 60", rec.Header().Get("Retry-After"))
	}
	if !strings.Contains(rec.Body.String(), apperr.ErrRateLimited.Error()) {
		t.Errorf("got body %q, want rate limit message", rec.Body.String())
	}
}

func TestLimitKeyedByCaller(t *testing.T) {
	rl := NewRateLimiter(NewMemoryCounter())
	handler := rl.Limit("login", 1)(okHandler())

	for _, addr := range []string{"10.0.0.1:1234", "10.0.0.2:1234", "10.0.0.3:1234"} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("addr %s: got status %d, want 200", addr, rec.Code)
		}
	}
}

func TestLimitKeyedByUserWhenAuthenticated(t *testing.T) {
	rl := NewRateLimiter(NewMemoryCounter())
	handler := rl.Limit("chat-send", 1)(okHandler())

	send := func(userID, addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/chat/send", nil)
		req.RemoteAddr = addr
		ctx := auth.WithUser(req.Context(), &models.User{ID: userID})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))
		return rec.Code
	}

	// Same user from different addresses shares one budget.
	if code := send("user-1", "10.0.0.1:1"); code != http.StatusOK {
		t.Fatalf("first request: got %d", code)
	}
	if code := send("user-1", "10.0.0.2:1"); code != http.StatusTooManyRequests {
		t.Errorf("same user, new addr: got %d, want 429", code)
	}
	if code := send("user-2", "10.0.0.1:1"); code != http.StatusOK {
		t.Errorf("different user: got %d, want 200", code)
	}
}

func TestLimitClassesIndependent(t *testing.T) {
	rl := NewRateLimiter(NewMemoryCounter())
	loginHandler := rl.Limit("login", 1)(okHandler())
	signupHandler := rl.Limit("signup", 1)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	loginHandler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	signupHandler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("signup after login: got %d, want 200 (classes share no budget)", rec.Code)
	}
}

type failingCounter struct{}

func (failingCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	return 0, errors.New("counter store down")
}

func TestLimitFailsOpen(t *testing.T) {
	rl := NewRateLimiter(failingCounter{})
	handler := rl.Limit("login", 1)(okHandler())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("got status %d, want 200 when counter store fails", rec.Code)
		}
	}
}

func TestMemoryCounterWindowReset(t *testing.T) {
	mc := NewMemoryCounter()
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		count, err := mc.Incr(ctx, "k", 10*time.Millisecond)
		if err != nil {
			t.Fatalf("Incr: %v", err)
		}
		if count != i {
			t.Errorf("got count %d, want %d", count, i)
		}
	}

	time.Sleep(20 * time.Millisecond)
	count, err := mc.Incr(ctx, "k", 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Incr: %v", err)
	}
	if count != 1 {
		t.Errorf("got count %d after window elapsed, want 1", count)
	}
}
