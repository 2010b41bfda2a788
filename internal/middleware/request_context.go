package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/anonto42/heritage-feed/backend/pkg/logger"
)

// RequestContext reads or generates the X-Request-ID and stores a child
// logger carrying request metadata in the request context.
func RequestContext(base zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, reqID string) {
			req := c.Request()
			child := base.With().
				Str(logger.FieldRequestID, reqID).
				Str(logger.FieldMethod, req.Method).
				Str(logger.FieldPath, req.URL.Path).
				Str(logger.FieldClientIP, c.RealIP()).
				Logger()
			c.SetRequest(req.WithContext(logger.WithLogger(req.Context(), child)))
		},
	})
}

// RequestLogger logs every completed request through the request scoped logger.
func RequestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			l := logger.Ctx(c.Request().Context())
			evt := l.Info()
			switch {
			case v.Status >= 500:
				evt = l.Error().Err(v.Error)
			case v.Status >= 400:
				evt = l.Warn().Err(v.Error)
			}
			evt.Int(logger.FieldStatus, v.Status).
				Float64(logger.FieldLatency, float64(v.Latency)/float64(time.Millisecond)).
				Msg("request completed")
			return nil
		},
	})
}
