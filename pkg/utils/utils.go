package utils

import (
	"time"

	"github.com/adarchive/adlib-gateway/config"
	"github.com/adarchive/adlib-gateway/pkg/logger"
)

var appLocation = time.UTC

// InitTimezone initializes the application timezone from config.
func InitTimezone() error {
	timezone := config.Get().App.Timezone
	if timezone == "" {
		logger.Warn().Msg("No timezone configured, using UTC")
		appLocation = time.UTC
		return nil
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Error().Err(err).Str("timezone", timezone).Msg("Failed to load timezone, using UTC")
		appLocation = time.UTC
		return err
	}

	appLocation = loc
	return nil
}

// Now returns current time in application timezone
func Now() time.Time {
	return time.Now().In(appLocation)
}

// NowFormatted returns current time formatted in RFC3339 with app timezone
func NowFormatted() string {
	return Now().Format(time.RFC3339)
}
