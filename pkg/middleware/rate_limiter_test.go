package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(60, 2) // 1 rps, burst 2

	handler := rl.RateLimitMiddleware()(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	doRequest := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		require.NoError(t, handler(c))
		return rec
	}

	// Burst allows the first two, then the bucket is empty.
	assert.Equal(t, http.StatusOK, doRequest("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, doRequest("10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest("10.0.0.1").Code)

	// A different IP has its own bucket.
	assert.Equal(t, http.StatusOK, doRequest("10.0.0.2").Code)
}

func TestGetLimiterReusesBucket(t *testing.T) {
	rl := NewRateLimiter(120, 5)
	a := rl.GetLimiter("10.0.0.1")
	b := rl.GetLimiter("10.0.0.1")
	assert.Same(t, a, b)
}
