package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/guestpix/service/internal/response"
)

// limiterTTL is how long an idle client's bucket is kept before cleanup.
const limiterTTL = 5 * time.Minute

type clientLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

// RateLimit returns middleware applying a per-client-IP token bucket of
// perMinute requests. perMinute <= 0 disables limiting entirely. Place after
// RealIP so RemoteAddr reflects the actual client.
func RateLimit(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limit := rate.Every(time.Minute / time.Duration(perMinute))
	burst := perMinute/2 + 1

	var (
		mu       sync.Mutex
		limiters = map[string]*clientLimiter{}
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			mu.Lock()
			now := time.Now()
			for key, cl := range limiters {
				if now.After(cl.expires) {
					delete(limiters, key)
				}
			}
			cl, ok := limiters[ip]
			if !ok {
				cl = &clientLimiter{limiter: rate.NewLimiter(limit, burst)}
				limiters[ip] = cl
			}
			cl.expires = now.Add(limiterTTL)
			allowed := cl.limiter.Allow()
			mu.Unlock()

			if !allowed {
				response.TooManyRequests(w, "too many uploads, slow down")
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
