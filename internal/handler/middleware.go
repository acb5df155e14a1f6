package handler

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"scheme-matcher/internal/repository/redis"
	"scheme-matcher/internal/token"
	"scheme-matcher/internal/util"
)

type contextKey string

const identityKey contextKey = "identity"

var errUnauthorized = errors.New("unauthorized")

// RequireAuth validates the bearer token and injects the caller's
// identity into the request context. Every failure mode returns the
// same generic 401; the precise cause is only logged.
func RequireAuth(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := tokens.Validate(bearerToken(r))
			if err != nil {
				util.Debug("Token validation failed",
					util.String("path", r.URL.Path),
					util.ErrorField(err))
				respondWithError(w, http.StatusUnauthorized, errUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// identityFromContext returns the identity set by RequireAuth.
func identityFromContext(ctx context.Context) (token.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(token.Identity)
	return identity, ok
}

// bearerToken extracts the raw token from the Authorization header.
// Returns the empty string when the header is missing or not a Bearer
// scheme.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

// RateLimitMiddleware throttles requests per client IP over a fixed
// window. With a nil cache it is a pass-through, and counter errors
// fail open so a Redis outage never locks users out of auth.
func RateLimitMiddleware(cache *redis.RateLimitCache, max int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if cache == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			count, err := cache.IncrementIPCounter(r.Context(), ip, window)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			if count > max {
				util.Warn("Rate limit exceeded",
					util.String("ip", ip),
					util.Int("count", count))
				respondWithError(w, http.StatusTooManyRequests, errors.New("too many requests"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
