package rest

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// defaultBackoff is used when a 429 response carries no usable Retry-After.
const defaultBackoff = 5 * time.Second

// RateLimiter throttles backend requests.
// It uses a token bucket with an extra pause set by 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a limiter allowing perSecond requests with an equal burst.
func NewRateLimiter(perSecond int) *RateLimiter {
	if perSecond < 1 {
		perSecond = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(perSecond), perSecond),
	}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any pause set by RecordRateLimit.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimit pauses requests for the given duration.
// A non-positive duration uses the default backoff.
func (r *RateLimiter) RecordRateLimit(d time.Duration) {
	if d <= 0 {
		d = defaultBackoff
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if until := time.Now().Add(d); until.After(r.retryAt) {
		r.retryAt = until
	}
}

// RetryAt returns when the current pause ends. Zero means no pause.
func (r *RateLimiter) RetryAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAt
}

// parseRetryAfter reads a Retry-After header in seconds or HTTP-date form.
func parseRetryAfter(header string, now time.Time) time.Duration {
	if header == "" {
		return 0
	}
	if secs, err := strconv.Atoi(header); err == nil {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(header); err == nil {
		return at.Sub(now)
	}
	return 0
}
