package middleware

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/paul-techiesapp/martin-aia/internal/api/handler/v1/response"
)

// RateLimiter throttles the public, unauthenticated endpoints per client
// IP. Limiters are kept in memory, so the limit is per instance.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

func (r *RateLimiter) limiterFor(key string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.limiters[key]
	if !ok {
		l = rate.NewLimiter(r.limit, r.burst)
		r.limiters[key] = l
	}

	return l
}

func (r *RateLimiter) Limit() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !r.limiterFor(ctx.ClientIP()).Allow() {
			response.RenderErr(ctx, response.ErrTooManyRequests(errors.New("too many requests")))
			ctx.Abort()

			return
		}

		ctx.Next()
	}
}
