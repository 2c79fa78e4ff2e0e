package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pleaderai/backend/internal/apperr"
	"github.com/pleaderai/backend/internal/auth"
)

// CounterStore increments a fixed-window counter and returns the new
// count. Implementations must be safe for concurrent use.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter enforces per-route-class request budgets. The counter key
// combines the route class with the caller identity: the user id once
// authentication has run, the client address otherwise.
type RateLimiter struct {
	store CounterStore
}

func NewRateLimiter(store CounterStore) *RateLimiter {
	return &RateLimiter{store: store}
}

// Limit returns middleware bounding the route class to perMinute
// requests per caller per minute. Exceeding the budget is a distinct
// 429 outcome; no handler side effects run.
func (rl *RateLimiter) Limit(class string, perMinute int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ratelimit:" + class + ":" + callerKey(r)

			count, err := rl.store.Incr(r.Context(), key, time.Minute)
			if err != nil {
				// A broken counter store must not take the API down.
				slog.Error("rate limit counter failed", "class", class, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(perMinute) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "60")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{"error": apperr.ErrRateLimited.Error()})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func callerKey(r *http.Request) string {
	if u := auth.UserFromContext(r.Context()); u != nil {
		return u.ID
	}
	return r.RemoteAddr
}

// RedisCounter keeps window counters in redis so limits hold across
// replicas.
type RedisCounter struct {
	rdb *redis.Client
}

func NewRedisCounter(rdb *redis.Client) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// MemoryCounter is the single-process fallback when redis is not
// configured.
type MemoryCounter struct {
	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count   int64
	resetAt time.Time
}

func NewMemoryCounter() *MemoryCounter {
	mc := &MemoryCounter{windows: make(map[string]*window)}
	go mc.cleanup()
	return mc
}

func (c *MemoryCounter) Incr(_ context.Context, key string, windowDur time.Duration) (int64, error) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(windowDur)}
		c.windows[key] = w
	}
	w.count++
	return w.count, nil
}

func (c *MemoryCounter) cleanup() {
	for {
		time.Sleep(time.Minute)
		now := time.Now()
		c.mu.Lock()
		for key, w := range c.windows {
			if now.After(w.resetAt) {
				delete(c.windows, key)
			}
		}
		c.mu.Unlock()
	}
}
