package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

// orderedJSONWriter rewrites each log line so that time, level, scope and
// message always come first. Used outside production for readability.
type orderedJSONWriter struct {
	output io.Writer
}

func (w *orderedJSONWriter) Write(p []byte) (n int, err error) {
	var logData map[string]interface{}
	if err := json.Unmarshal(p, &logData); err != nil {
		return w.output.Write(p)
	}

	fieldOrder := []string{"time", "level", "scope", "message"}
	processed := make(map[string]bool, len(logData))

	var parts []string
	for _, field := range fieldOrder {
		if value, exists := logData[field]; exists {
			jsonValue, _ := json.Marshal(value)
			parts = append(parts, fmt.Sprintf(`"%s":%s`, field, jsonValue))
			processed[field] = true
		}
	}
	for key, value := range logData {
		if !processed[key] {
			jsonValue, _ := json.Marshal(value)
			parts = append(parts, fmt.Sprintf(`"%s":%s`, key, jsonValue))
		}
	}

	return w.output.Write([]byte("{" + strings.Join(parts, ",") + "}\n"))
}

// init sets up a default logger so packages can log before Init runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	log = zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.DefaultContextLogger = &log
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(time.UTC)
	}
}

// Init configures the logger with timezone and environment settings.
func Init(timezone, environment string) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
		log.Warn().Err(err).Str("timezone", timezone).Msg("Invalid timezone, using UTC")
	}

	zerolog.TimestampFieldName = "time"
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"

	// Production writes directly; elsewhere field order is normalized.
	var writer io.Writer = os.Stdout
	if environment != "prod" {
		writer = &orderedJSONWriter{output: os.Stdout}
	}

	log = zerolog.New(writer).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.DefaultContextLogger = &log
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(loc)
	}
	log.Info().Str("timezone", loc.String()).Str("environment", environment).Msg("Logger configured")
}

// Debug returns a debug level log event
func Debug() *zerolog.Event {
	return log.Debug()
}

// Info returns an info level log event
func Info() *zerolog.Event {
	return log.Info()
}

// Warn returns a warning level log event
func Warn() *zerolog.Event {
	return log.Warn()
}

// Error returns an error level log event
func Error() *zerolog.Event {
	return log.Error()
}

// Fatal returns a fatal level log event
func Fatal() *zerolog.Event {
	return log.Fatal()
}

// ScopedLogger is a logger with a fixed scope field.
type ScopedLogger struct {
	logger zerolog.Logger
	scope  string
}

// WithScope creates a logger whose events all carry the given scope.
func WithScope(scope string) *ScopedLogger {
	return &ScopedLogger{
		logger: log.With().Str("scope", scope).Logger(),
		scope:  scope,
	}
}

// Debug returns a debug level log event with scope
func (s *ScopedLogger) Debug() *zerolog.Event {
	return s.logger.Debug()
}

// Info returns an info level log event with scope
func (s *ScopedLogger) Info() *zerolog.Event {
	return s.logger.Info()
}

// Warn returns a warning level log event with scope
func (s *ScopedLogger) Warn() *zerolog.Event {
	return s.logger.Warn()
}

// Error returns an error level log event with scope
func (s *ScopedLogger) Error() *zerolog.Event {
	return s.logger.Error()
}
