package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// LoadSession resolves the session cookie into an identity on the request
// context. Requests without a valid session continue anonymously.
func LoadSession(sessions *SessionStore, users *UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, err := sessions.Validate(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithIdentity(r.Context(), users.Identity(email))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession redirects requests without a session identity to the
// login page. It must run after LoadSession.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFrom(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimiter tracks failed API key attempts per client address.
type RateLimiter struct {
	mu       sync.Mutex
	window   time.Duration
	maxFail  int
	attempts map[string][]time.Time
	now      func() time.Time
}

// Defaults for NewRateLimiter.
const (
	RateLimitWindow  = 1 * time.Minute
	RateLimitMaxFail = 10
)

// NewRateLimiter allows maxFail failures per window for each address.
func NewRateLimiter(window time.Duration, maxFail int) *RateLimiter {
	return &RateLimiter{
		window:   window,
		maxFail:  maxFail,
		attempts: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// prune drops attempts older than the window. Caller holds mu.
func (rl *RateLimiter) prune(ip string) []time.Time {
	cutoff := rl.now().Add(-rl.window)
	valid := rl.attempts[ip][:0]
	for _, t := range rl.attempts[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		delete(rl.attempts, ip)
		return nil
	}
	rl.attempts[ip] = valid
	return valid
}

// Blocked reports whether ip has used up its failures for the window.
func (rl *RateLimiter) Blocked(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.prune(ip)) >= rl.maxFail
}

// RecordFailure records a failed attempt for ip.
func (rl *RateLimiter) RecordFailure(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.attempts[ip] = append(rl.prune(ip), rl.now())
}

// LoadAPIKey validates a Bearer token when one is present and stores the
// key's identity on the request context. Requests without an Authorization
// header pass through anonymously. Invalid keys get 401, and addresses with
// too many recent failures get 429.
func LoadAPIKey(apiKeys *APIKeyStore, users *UserStore, limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			key, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || strings.TrimSpace(key) == "" {
				jsonError(w, "authorization must be a bearer token", http.StatusUnauthorized)
				return
			}

			ip := r.RemoteAddr
			if limiter.Blocked(ip) {
				jsonError(w, "too many requests", http.StatusTooManyRequests)
				return
			}

			email, valid, err := apiKeys.Validate(key)
			if err != nil {
				slog.Error("validating api key", "err", err)
				jsonError(w, "internal error", http.StatusInternalServerError)
				return
			}
			if !valid {
				limiter.RecordFailure(ip)
				jsonError(w, "invalid api key", http.StatusUnauthorized)
				return
			}

			ctx := WithIdentity(r.Context(), users.Identity(email))
			ctx = withAPIKey(ctx, key)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAPIKey rejects requests that did not authenticate with an API
// key. It must run after LoadAPIKey.
func RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := APIKeyFrom(r.Context()); !ok {
			jsonError(w, "authorization required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		slog.Warn("writing error response", "err", err)
	}
}
