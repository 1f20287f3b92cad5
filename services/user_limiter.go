package services

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// userLimiter keeps one token bucket per author.
// A nil userLimiter allows everything.
type userLimiter struct {
	limit  rate.Limit
	burst  int
	mu     sync.Mutex
	bucket map[string]*rate.Limiter
}

func newUserLimiter(perMinute int) *userLimiter {
	if perMinute <= 0 {
		return nil
	}
	return &userLimiter{
		limit:  rate.Every(time.Minute / time.Duration(perMinute)),
		burst:  perMinute,
		bucket: make(map[string]*rate.Limiter),
	}
}

func (l *userLimiter) Allow(userID string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	limiter, ok := l.bucket[userID]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.bucket[userID] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}
