package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gyanbhambhani/rltr/pkg/logger"
)

// RequestID tags every request with an id: the caller-supplied X-Request-ID
// when present, a fresh UUID otherwise. The id is echoed on the response and
// attached to the request-scoped logger.
func RequestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(echo.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
			c.Request().Header.Set(echo.HeaderXRequestID, requestID)
		}

		c.Response().Header().Set(echo.HeaderXRequestID, requestID)
		c.Set("request_id", requestID)

		log := logger.GetLogger().With(zap.String("request_id", requestID))
		c.Set("logger", log)

		return next(c)
	}
}
