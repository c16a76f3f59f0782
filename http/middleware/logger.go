package middleware

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adarchive/adlib-gateway/internal/constants"
	"github.com/adarchive/adlib-gateway/pkg/logger"
	"github.com/adarchive/adlib-gateway/pkg/utils"
)

// Logger middleware logs HTTP requests with timing and generates request IDs
func Logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := utils.Now()

		// Get Request ID from header or generate it
		reqId := constants.GetRequestIDFromHeaders(c)
		if reqId == "" {
			reqId = generateRequestID()
		}
		c.Set(constants.RequestIDKey, reqId)

		err := next(c)

		latency := time.Since(start).Microseconds()
		status := c.Response().Status
		if err != nil {
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
		}

		logger.WithScope("accessLog").Info().
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Int("status", status).
			Int64("latency", latency).
			Str("request-id", reqId).
			Msg("HTTP Request")

		return err
	}
}

// generateRequestID creates unique request identifier with timestamp and random component
func generateRequestID() string {
	return fmt.Sprintf("req-%d-%08x", utils.Now().Unix(), rand.Uint32())
}
