package limiter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestMiddlewareBlocksAfterBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewIPRateLimiter(ctx, rate.Every(time.Hour), 2)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(addr string) int {
		r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		r.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("198.51.100.7:1000"))
	assert.Equal(t, http.StatusNoContent, call("198.51.100.7:1001"))
	assert.Equal(t, http.StatusTooManyRequests, call("198.51.100.7:1002"))

	// other clients are unaffected
	assert.Equal(t, http.StatusNoContent, call("198.51.100.8:1000"))
}

func TestPruneDropsIdleLimiters(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewIPRateLimiter(ctx, rate.Every(time.Second), 1)
	l.GetLimiter("a").Allow()
	l.GetLimiter("b")

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 1, l.prune(time.Now()))
	assert.Equal(t, 1, l.Len())

	assert.Equal(t, 1, l.prune(time.Now().Add(time.Minute)))
	assert.Zero(t, l.Len())
}
