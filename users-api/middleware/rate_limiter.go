package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// LoginRateLimiter throttles signin attempts per client IP to slow down
// credential stuffing. Limiters are created lazily per IP.
type LoginRateLimiter struct {
	limiters sync.Map
	rps      rate.Limit
	burst    int
}

// NewLoginRateLimiter builds a limiter allowing rps requests per second
// with the given burst per IP.
func NewLoginRateLimiter(rps float64, burst int) *LoginRateLimiter {
	if burst <= 0 {
		burst = 5
	}
	return &LoginRateLimiter{
		rps:   rate.Limit(rps),
		burst: burst,
	}
}

func (l *LoginRateLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		if lim, ok := v.(*rate.Limiter); ok {
			return lim
		}
	}

	lim := rate.NewLimiter(l.rps, l.burst)
	actual, loaded := l.limiters.LoadOrStore(key, lim)
	if loaded {
		if actualLim, ok := actual.(*rate.Limiter); ok {
			return actualLim
		}
	}
	return lim
}

// Handler is the gin middleware enforcing the limit.
func (l *LoginRateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.getLimiter(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many login attempts, slow down",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
