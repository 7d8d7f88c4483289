package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/worthyten/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// probePaths are polled by orchestrators. Only the first success per path
// is logged; failures are always logged.
var probePaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
}

// RequestLog returns Echo middleware that logs requests with structured fields.
// It generates a request ID if none is provided and propagates it through
// the response header, echo context, and request context.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var (
		mu          sync.Mutex
		probeLogged = make(map[string]bool, len(probePaths))
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			// Handlers log through the tagged context; this record names
			// the ID itself.
			ctx := c.Request().Context()
			c.SetRequest(c.Request().WithContext(logger.WithRequestID(ctx, reqID)))

			err := next(c)

			path := c.Request().URL.Path
			status := c.Response().Status
			level := slog.LevelInfo

			if _, probe := probePaths[path]; probe {
				if status < http.StatusBadRequest {
					mu.Lock()
					seen := probeLogged[path]
					probeLogged[path] = true
					mu.Unlock()
					if seen {
						return err
					}
				} else {
					level = slog.LevelWarn
				}
			} else if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			log.Log(ctx, level, "request",
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			)

			return err
		}
	}
}
