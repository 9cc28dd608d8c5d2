package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// IPs sem request há mais que isso são removidos do store
const limiterIdleTTL = 3 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterStore struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
}

func newLimiterStore() *limiterStore {
	return &limiterStore{entries: make(map[string]*limiterEntry)}
}

func (s *limiterStore) get(ip string, perMin int) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[ip]
	if !ok {
		e = &limiterEntry{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), perMin),
		}
		s.entries[ip] = e
	}
	e.lastSeen = time.Now()
	return e.limiter
}

// sweep descarta entradas ociosas há mais de idle
func (s *limiterStore) sweep(idle time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-idle)
	for ip, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, ip)
		}
	}
}

func (s *limiterStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// RateLimitMiddleware limita requests por IP de origem.
func RateLimitMiddleware(perMin int) gin.HandlerFunc {
	store := newLimiterStore()

	go func() {
		for range time.Tick(time.Minute) {
			store.sweep(limiterIdleTTL)
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.get(ip, perMin).Allow() {
			zap.L().Warn("rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate_limit_exceeded"})
			return
		}
		c.Next()
	}
}
