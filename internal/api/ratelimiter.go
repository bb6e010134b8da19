package api

import (
	"math"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"
)

type rateLimiter interface {
	Allow() bool
}

// tokenBucket adapts rate.Limiter and remembers the refill rate so rejected
// callers can be told when to come back.
type tokenBucket struct {
	limiter *rate.Limiter
}

func newTokenBucketLimiter(ratePerSecond float64, burst int) *tokenBucket {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &tokenBucket{
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

func (b *tokenBucket) Allow() bool {
	if b == nil || b.limiter == nil {
		return true
	}
	return b.limiter.Allow()
}

// retryAfterSeconds is the whole number of seconds until one token refills.
func (b *tokenBucket) retryAfterSeconds() int {
	if b == nil || b.limiter == nil || b.limiter.Limit() <= 0 {
		return 1
	}
	return max(int(math.Ceil(1/float64(b.limiter.Limit()))), 1)
}

func rateLimitMiddleware(limiter rateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	retryAfter := 1
	if bucket, ok := limiter.(*tokenBucket); ok {
		retryAfter = bucket.retryAfterSeconds()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limiter.Allow() {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		writeError(w, http.StatusTooManyRequests, "Too many requests", "apportionment rate limit exceeded, please retry shortly")
	})
}
