package api

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// rateLimiter caps public submissions per client IP with a fixed window
// counter in Redis. Without a client every request passes.
type rateLimiter struct {
	client    *redis.Client
	limit     int
	window    time.Duration
	responder Responder
	logger    zerolog.Logger
}

func newRateLimiter(client *redis.Client, limit int, window time.Duration) rateLimiter {
	logger := log.With().Str("handlerName", "rateLimiter").Logger()
	return rateLimiter{
		client:    client,
		limit:     limit,
		window:    window,
		responder: NewResponder(logger),
		logger:    logger,
	}
}

// middleware limits the requests of one bucket, e.g. "contact" or "comment"
func (l rateLimiter) middleware(bucket string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l.client == nil || l.limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ratelimit:" + bucket + ":" + clientIP(r)
			ctx := r.Context()

			count, err := l.client.Incr(ctx, key).Result()
			if err != nil {
				l.logger.Error().Err(err).Str("key", key).Msg("Rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
					l.logger.Error().Err(err).Str("key", key).Msg("Failed to set rate limit window")
				}
			}

			if count > int64(l.limit) {
				ttl, err := l.client.TTL(ctx, key).Result()
				if err != nil || ttl <= 0 {
					ttl = l.window
				}
				retryAfter := int(ttl.Round(time.Second) / time.Second)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				l.responder.WriteError(w, errs.NewRateLimitedError(retryAfter))
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
