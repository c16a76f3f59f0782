package registry

import (
	"time"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"

	"github.com/adarchive/adlib-gateway/pkg/logger"
)

type SetupFunc func(g *echo.Group)

// prefixRegistry maps a mount prefix ("" for the root, "api" for the API
// surface) to its route setup functions.
var prefixRegistry = make(map[string][]SetupFunc)

// Register adds a router setup function under the given mount prefix.
func Register(prefix string, setup SetupFunc) {
	prefixRegistry[prefix] = append(prefixRegistry[prefix], setup)
}

// SetupAllRoutes applies all registered routes to the echo instance.
func SetupAllRoutes(e *echo.Echo) {
	setupValidator(e)

	log := logger.WithScope("SetupAllRoutes")
	if len(prefixRegistry) == 0 {
		log.Warn().Msg("No routes registered")
		return
	}
	for prefix, setups := range prefixRegistry {
		mount := ""
		if prefix != "" {
			mount = "/" + prefix
		}
		log.Info().Str("prefix", mount).Int("routes", len(setups)).Msg("Setting up route group")
		g := e.Group(mount)
		for _, setup := range setups {
			setup(g)
		}
	}
}

// setupValidator configures request validation using go-playground/validator
func setupValidator(e *echo.Echo) {
	v := validator.New()
	// YYYY-MM-DD, used by the after_date parameter.
	_ = v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	e.Validator = &CustomValidator{validator: v}
}

type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates struct fields using validator tags
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
