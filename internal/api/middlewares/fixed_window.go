package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/5w1tchy/passkit/internal/api/httpx"
	"github.com/redis/go-redis/v9"
)

// FixedWindow allows max requests per key per window (INCR + EXPIRE).
// Used on /v1/verify so the endpoint cannot be used as a guessing oracle.
func FixedWindow(rdb redis.Cmdable, max int, win time.Duration, keyFn KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rdb == nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			key := "rl:" + keyFn(r)

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				next.ServeHTTP(w, r) // fail-open
				return
			}
			if n == 1 {
				_ = rdb.Expire(ctx, key, win).Err()
			}
			if n > int64(max) {
				retry := win
				if ttl, err := rdb.TTL(ctx, key).Result(); err == nil && ttl > 0 {
					retry = ttl
				}
				w.Header().Set("Retry-After", strconv.Itoa(int(retry.Round(time.Second)/time.Second)))
				tooMany(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tooMany(w http.ResponseWriter) {
	httpx.ErrorCode(w, http.StatusTooManyRequests, "rate_limited", "Too Many Requests")
}
