package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ftth-net.id/dashboard/pkg/redis"
)

type RateLimiter struct {
	redis      *redis.RedisClient
	limit      int
	window     time.Duration
	trustProxy bool
}

func NewRateLimiter(redisClient *redis.RedisClient, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		limit:  limit,
		window: window,
	}
}

// TrustProxy makes the limiter key on the address appended by the reverse
// proxy in X-Forwarded-For instead of the connection's peer.
func (rl *RateLimiter) TrustProxy(trust bool) *RateLimiter {
	rl.trustProxy = trust
	return rl
}

// clientIP returns the peer address, or the last X-Forwarded-For hop when
// the proxy is trusted. Earlier hops are client-controlled.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			hops := strings.Split(forwarded, ",")
			if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
				return last
			}
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// Middleware throttles per client address. Without Redis it lets everything through.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.redis == nil || rl.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		key := "ratelimit:" + r.URL.Path + ":" + clientIP(r, rl.trustProxy)

		allowed, retryAfter, err := rl.redis.CheckRateLimit(r.Context(), key, rl.limit, rl.window)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"error":"Too many attempts. Please try again later."}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
