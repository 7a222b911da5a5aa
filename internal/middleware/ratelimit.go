package middleware

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/talx/rooms-api/internal/pkg/response"
)

// RateLimit limits requests per client IP using Redis counters.
// A nil client disables limiting (Redis is optional in development).
func RateLimit(client *redis.Client, maxRequests int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if client == nil || maxRequests <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ratelimit:" + ClientIP(r)

			// INCR and EXPIRE in one pipeline so the key cannot stay without a TTL
			pipe := client.Pipeline()
			incr := pipe.Incr(r.Context(), key)
			pipe.Expire(r.Context(), key, window)
			if _, err := pipe.Exec(r.Context()); err != nil {
				// Fail open: a broken limiter must not take the API down
				log.Error().Err(err).Msg("Rate limit pipeline failed")
				next.ServeHTTP(w, r)
				return
			}

			if incr.Val() > int64(maxRequests) {
				response.TooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
