package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/arkadem/startup-board/api/common"
)

// PerClientRateLimiter keeps an independent token bucket per client IP.
// Used on the auth form POSTs to slow down credential stuffing.
type PerClientRateLimiter struct {
	rps     rate.Limit
	burst   int
	clients map[string]*rate.Limiter
	mu      sync.RWMutex
}

func NewPerClientRateLimiter(rps float64, burst int) *PerClientRateLimiter {
	return &PerClientRateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*rate.Limiter),
	}
}

// Middleware returns the gin middleware enforcing the limit.
func (rl *PerClientRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.getLimiter(c.ClientIP())
		if !limiter.Allow() {
			common.RespondErrorAbort(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}

func (rl *PerClientRateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.clients[ip]
	rl.mu.RUnlock()

	if exists {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, exists := rl.clients[ip]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rl.rps, rl.burst)
	rl.clients[ip] = limiter
	return limiter
}
