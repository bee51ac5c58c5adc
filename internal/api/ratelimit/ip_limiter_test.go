package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestIPLimiter_Allow(t *testing.T) {
	l := NewIPLimiter(1, 2)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return base }

	if !l.Allow("1.1.1.1") || !l.Allow("1.1.1.1") {
		t.Fatal("burst requests should be allowed")
	}
	if l.Allow("1.1.1.1") {
		t.Error("third request within the same instant should be rejected")
	}
	if !l.Allow("2.2.2.2") {
		t.Error("other IPs have their own bucket")
	}

	l.now = func() time.Time { return base.Add(time.Second) }
	if !l.Allow("1.1.1.1") {
		t.Error("bucket should refill after one second")
	}
}

func TestIPLimiter_Cleanup(t *testing.T) {
	l := NewIPLimiter(0, 0)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return base }
	l.Allow("1.1.1.1")

	l.now = func() time.Time { return base.Add(DefaultIdleTTL / 2) }
	l.Allow("2.2.2.2")

	l.now = func() time.Time { return base.Add(DefaultIdleTTL + time.Second) }
	l.Cleanup()

	if got := l.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestIPLimiter_Middleware(t *testing.T) {
	l := NewIPLimiter(1, 1)
	e := echo.New()
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, l.Middleware())

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 429]", codes)
	}
}
