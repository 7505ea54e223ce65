package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const headerCorrelationID = "Correlation-ID"

// RequestLogger tags each request with a correlation id (taken from the
// Correlation-ID header when present) and logs one line per request.
func RequestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			correlationID := c.Request().Header.Get(headerCorrelationID)
			if correlationID == "" {
				correlationID = uuid.NewString()
			}
			c.Response().Header().Set(headerCorrelationID, correlationID)

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			entry := log.WithFields(logrus.Fields{
				"correlation_id": correlationID,
				"method":         c.Request().Method,
				"path":           c.Path(),
				"status":         c.Response().Status,
				"user":           Username(c),
				"duration":       time.Since(start).String(),
			})
			if c.Response().Status >= 500 {
				entry.Error("request failed")
			} else {
				entry.Info("request handled")
			}
			return nil
		}
	}
}
