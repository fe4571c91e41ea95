// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

// Package middleware provides HTTP middleware for authentication and
// request throttling.
package middleware

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/alexedwards/scs/v2"
	"golang.org/x/time/rate"
)

// Session keys for storing account data.
const (
	SessionKeyAccountID = "account_id"
)

// APIError is the JSON error envelope. It matches the handler
// responses, so every error on the API carries the same shape.
type APIError struct {
	OK        bool   `json:"ok"`
	Code      string `json:"code"`
	Error     string `json:"error"`
	LoginPath string `json:"loginPath,omitempty"`
}

// WriteAPIError writes a JSON error response.
func WriteAPIError(w http.ResponseWriter, statusCode int, code, message, loginPath string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIError{Code: code, Error: message, LoginPath: loginPath})
}

// RequireAccount creates middleware for owner-only API routes. An
// unauthenticated request gets 401 with a login path carrying the
// original request as the return destination.
func RequireAccount(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountID := sm.GetString(r.Context(), SessionKeyAccountID)
			if accountID == "" {
				WriteAPIError(w, http.StatusUnauthorized, "login_required",
					"Sign in to continue", "/login?next="+r.URL.RequestURI())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetAccountID returns the signed-in account for a request, or "".
func GetAccountID(sm *scs.SessionManager, r *http.Request) string {
	return sm.GetString(r.Context(), SessionKeyAccountID)
}

// limiterCache is a per-key rate limiter map with double-check locking.
type limiterCache[K comparable] struct {
	limiters map[K]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()
	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()
	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// IPRateLimiter throttles unauthenticated requests per client IP.
type IPRateLimiter struct {
	cache *limiterCache[string]
}

// NewIPRateLimiter creates an IPRateLimiter allowing rps requests per
// second with the given burst per IP.
func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{cache: newLimiterCache[string](rps, burst)}
}

// Middleware returns the throttling middleware. Over-limit requests
// get 429 with a JSON body.
func (rl *IPRateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !rl.cache.get(ip).Allow() {
				slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
				WriteAPIError(w, http.StatusTooManyRequests, "rate_limit_exceeded",
					"Too many requests. Please slow down.", "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client address, honoring the first entry of
// X-Forwarded-For when present.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
