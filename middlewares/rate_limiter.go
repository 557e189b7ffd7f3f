package middlewares

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
	"golang.org/x/time/rate"
)

const visitorIdleTTL = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	limit     rate.Limit
	burst     int
	message   string
	visitors  map[string]*visitor
	lastSweep time.Time
	mu        sync.Mutex
}

func NewRateLimiter(limit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		burst:     burst,
		message:   "Too many requests",
		visitors:  make(map[string]*visitor),
		lastSweep: time.Now(),
	}
}

// NewStrictRateLimiter allows perMinute attempts per IP, used for login.
func NewStrictRateLimiter(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		perMinute = 5
	}
	rl := NewRateLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	rl.message = "Too many attempts, please wait a moment"
	return rl.RateLimit()
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastSweep) > time.Minute {
		for key, v := range rl.visitors {
			if now.Sub(v.lastSeen) > visitorIdleTTL {
				delete(rl.visitors, key)
			}
		}
		rl.lastSweep = now
	}

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.Allow()
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			utils.RespondError(c, http.StatusTooManyRequests, errors.New(rl.message))
			c.Abort()
			return
		}
		c.Next()
	}
}
