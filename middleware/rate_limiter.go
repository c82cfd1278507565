package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// IPRateLimiter keeps one token bucket per client IP. IPs quiet for
// longer than idleAfter are evicted on access, so the map stays bounded
// by the set of currently active clients.
type IPRateLimiter struct {
	mu        sync.Mutex
	ips       map[string]*ipBucket
	rate      rate.Limit
	burst     int
	idleAfter time.Duration
}

type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter creates a limiter allowing r events with the given
// burst per IP, forgetting IPs idle past idleAfter.
func NewIPRateLimiter(r rate.Limit, burst int, idleAfter time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		ips:       make(map[string]*ipBucket),
		rate:      r,
		burst:     burst,
		idleAfter: idleAfter,
	}
}

// Allow reports whether the IP may proceed, consuming a token if so.
func (rl *IPRateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for addr, b := range rl.ips {
		if now.Sub(b.lastSeen) > rl.idleAfter {
			delete(rl.ips, addr)
		}
	}

	b, ok := rl.ips[ip]
	if !ok {
		b = &ipBucket{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.ips[ip] = b
	}
	b.lastSeen = now
	return b.limiter.Allow()
}

// ActiveIPs returns the number of IPs currently tracked.
func (rl *IPRateLimiter) ActiveIPs() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.ips)
}

// RateLimitMiddleware throttles per client IP at perMinute requests with
// the given burst. Applied to the auth endpoints to slow credential
// stuffing.
func RateLimitMiddleware(perMinute, burst int) gin.HandlerFunc {
	rl := NewIPRateLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst, 10*time.Minute)

	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
