package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitMiddlewareBlocksAfterBurst(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Fatalf("burst requests should pass, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Fatalf("third request = %d, want 429", statuses[2])
	}
}

func TestLimiterStoreSweepEvictsIdleIPs(t *testing.T) {
	store := newLimiterStore()

	store.get("192.0.2.10", 10)
	store.get("192.0.2.20", 10)

	// envelhece só o primeiro IP
	store.mu.Lock()
	store.entries["192.0.2.10"].lastSeen = time.Now().Add(-10 * time.Minute)
	store.mu.Unlock()

	store.sweep(limiterIdleTTL)

	if store.len() != 1 {
		t.Fatalf("store len = %d, want 1", store.len())
	}

	store.mu.Lock()
	_, idleKept := store.entries["192.0.2.10"]
	_, activeKept := store.entries["192.0.2.20"]
	store.mu.Unlock()

	if idleKept {
		t.Fatal("idle IP should have been evicted")
	}
	if !activeKept {
		t.Fatal("active IP should survive the sweep")
	}
}

func TestLimiterStoreRecreatesEvictedIP(t *testing.T) {
	store := newLimiterStore()
	store.get("192.0.2.10", 10)

	store.mu.Lock()
	store.entries["192.0.2.10"].lastSeen = time.Now().Add(-10 * time.Minute)
	store.mu.Unlock()

	store.sweep(limiterIdleTTL)

	// IP podado volta com um limiter novo, sem erro
	if l := store.get("192.0.2.10", 10); l == nil || !l.Allow() {
		t.Fatal("evicted IP should get a fresh limiter")
	}
	if store.len() != 1 {
		t.Fatalf("store len = %d, want 1", store.len())
	}
}
