package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/apierror"
	"github.com/JonnyWalker81/wellness/backend/internal/logger"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter provides token bucket rate limiting per client IP
type RateLimiter struct {
	clients map[string]*clientLimiter
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
	name    string
	stop    chan struct{}
	once    sync.Once
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing rps sustained requests per
// second with bursts of up to burst. Clients idle for idleTTL are evicted.
func NewRateLimiter(rps float64, burst int, idleTTL time.Duration, name string) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientLimiter),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
		name:    name,
		stop:    make(chan struct{}),
	}

	go rl.cleanup()

	logger.Default().Debug("rate limiter initialized",
		logger.String("name", name),
		logger.Float64("rps", rps),
		logger.Int("burst", burst),
	)

	return rl
}

// Stop ends the cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// cleanup removes idle clients periodically
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.idleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			cleaned := 0
			for ip, client := range rl.clients {
				if now.Sub(client.lastSeen) > rl.idleTTL {
					delete(rl.clients, ip)
					cleaned++
				}
			}
			remaining := len(rl.clients)
			rl.mu.Unlock()

			if cleaned > 0 {
				logger.Default().Debug("rate limiter cleanup completed",
					logger.String("name", rl.name),
					logger.Int("cleaned", cleaned),
					logger.Int("remaining", remaining),
				)
			}
		}
	}
}

// reserve takes a token for ip. When none is available it returns false
// and the wait until the next one.
func (rl *RateLimiter) reserve(ip string) (bool, time.Duration) {
	now := time.Now()

	rl.mu.Lock()
	client, ok := rl.clients[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[ip] = client
	}
	client.lastSeen = now
	rl.mu.Unlock()

	r := client.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Second
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// RateLimit returns a middleware handler that limits requests per IP
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Handles X-Forwarded-For behind trusted proxies
		ip := c.ClientIP()

		allowed, wait := limiter.reserve(ip)
		if !allowed {
			retryAfter := int(math.Ceil(wait.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}

			logger.FromContext(c.Request.Context()).Warn("rate limit exceeded",
				logger.String("limiter", limiter.name),
				logger.String("client_ip", ip),
				logger.Int("retry_after", retryAfter),
			)

			c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.burst))
			c.Header("X-RateLimit-Remaining", "0")
			apierror.AbortWithProblem(c, apierror.NewRateLimitError(apierror.GetRequestID(c), retryAfter))
			return
		}

		c.Next()
	}
}
