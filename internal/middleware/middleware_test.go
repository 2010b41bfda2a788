package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/heritage-feed/backend/pkg/logger"
)

func TestRequestContextInjectsLogger(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestContext(zerolog.New(&buf)))
	e.Use(RequestLogger())
	e.GET("/ping", func(c echo.Context) error {
		l := logger.Ctx(c.Request().Context())
		l.Info().Msg("inside")
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
	assert.Contains(t, buf.String(), `"message":"inside"`)
	assert.Contains(t, buf.String(), `"message":"request completed"`)
	assert.Contains(t, buf.String(), `"status":204`)
}

func TestRequestContextGeneratesID(t *testing.T) {
	e := echo.New()
	e.Use(RequestContext(zerolog.Nop()))
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)
}

func TestRateLimit(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(NewIPRateLimiter(0.001, 2)))
	e.POST("/likes", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/likes", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	require.Len(t, codes, 3)
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodPost, "/likes", nil)
	other.RemoteAddr = "10.0.0.2:5555"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitSkipsReads(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(NewIPRateLimiter(0.001, 1)))
	e.GET("/feed", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(NewIPRateLimiter(0, 1)))
	e.POST("/likes", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/likes", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
