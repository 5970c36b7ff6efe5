package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"courtly/internal/api"
	"courtly/internal/config"
)

// Idle clients are evicted after this long so the per-IP map cannot grow
// without bound on a public availability endpoint.
const clientIdleTTL = 3 * time.Minute

// clientBucket pairs one caller's token bucket with its last activity.
type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a per-client request budget. Availability lookups are
// cheap, but every booking attempt opens a locking transaction on the court
// rows, so the budget fronts the whole router.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientBucket
	rps     rate.Limit
	burst   int
}

func NewRateLimiter(rps, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientBucket),
		rps:     rate.Limit(rps),
		burst:   burst,
	}

	go rl.evictIdle()

	return rl
}

func (rl *RateLimiter) evictIdle() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for ip, c := range rl.clients {
			if time.Since(c.lastSeen) > clientIdleTTL {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Allow consumes one token from the caller's bucket, creating the bucket on
// first contact.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	c, ok := rl.clients[ip]
	if !ok {
		c = &clientBucket{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = time.Now()
	rl.mu.Unlock()

	return c.limiter.Allow()
}

// RateLimitMiddleware rejects callers over their budget with 429. The
// budget comes from configuration, next to the facility's operating hours.
func RateLimitMiddleware(cfg *config.Config) gin.HandlerFunc {
	limiter := NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				api.ErrorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
