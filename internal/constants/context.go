package constants

import "github.com/labstack/echo/v4"

const (
	// RequestIDKey is the echo context key holding the request ID.
	RequestIDKey = "x-req-id"

	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

// GetRequestIDFromHeaders extracts a caller-supplied request ID, preferring
// X-Request-ID over X-Correlation-ID.
func GetRequestIDFromHeaders(c echo.Context) string {
	if id := c.Request().Header.Get(HeaderRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(HeaderCorrelationID)
}

// GetRequestID extracts the request ID stored in the Echo context.
func GetRequestID(c echo.Context) string {
	rid, ok := c.Get(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return rid
}
