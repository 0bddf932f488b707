package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/servicehub-api/internal/api/shared"
	"github.com/phrazzld/servicehub-api/internal/metrics"
	"golang.org/x/time/rate"
)

// clientLimiter is one client's token bucket and when it was last used.
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter applies a per-client-IP token bucket. The zero-rate limiter
// returned for perMinute <= 0 lets everything through.
type RateLimiter struct {
	perMinute int
	limit     rate.Limit
	burst     int
	recorder  metrics.Recorder
	ttl       time.Duration
	now       func() time.Time

	mu      sync.Mutex
	clients map[string]*clientLimiter

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewRateLimiter allows perMinute requests per client IP, with bursts of the
// same size. Call Stop to end the background cleanup.
func NewRateLimiter(perMinute int, recorder metrics.Recorder) *RateLimiter {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	rl := &RateLimiter{
		perMinute: perMinute,
		limit:     rate.Limit(float64(perMinute) / 60.0),
		burst:     perMinute,
		recorder:  recorder,
		ttl:       10 * time.Minute,
		now:       time.Now,
		clients:   make(map[string]*clientLimiter),
		stopCh:    make(chan struct{}),
	}
	if perMinute > 0 {
		go rl.cleanupLoop(rl.ttl / 2)
	}
	return rl
}

// Enabled reports whether requests are limited at all.
func (rl *RateLimiter) Enabled() bool {
	return rl.burst > 0
}

// Stop ends the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Middleware rejects requests over the limit with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if !rl.Enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.allow(clientIP(r)) {
			next.ServeHTTP(w, r)
			return
		}

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		rl.recorder.RecordRateLimited(route)

		w.Header().Set("Retry-After", strconv.Itoa(rl.retryAfterSeconds()))
		shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests,
			"too many requests, please try again later", nil)
	})
}

// ClientCount returns how many clients currently have a bucket.
func (rl *RateLimiter) ClientCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	c, ok := rl.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
	}
	c.lastAccess = rl.now()
	rl.mu.Unlock()

	return c.limiter.Allow()
}

// retryAfterSeconds is the time for one token to refill, rounded up.
func (rl *RateLimiter) retryAfterSeconds() int {
	return (60 + rl.perMinute - 1) / rl.perMinute
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup drops buckets idle for longer than the TTL.
func (rl *RateLimiter) cleanup() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, c := range rl.clients {
		if now.Sub(c.lastAccess) > rl.ttl {
			delete(rl.clients, key)
		}
	}
}

// clientIP strips the port from RemoteAddr. When proxy headers are trusted,
// chi's RealIP middleware has already replaced RemoteAddr with the
// forwarded address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
