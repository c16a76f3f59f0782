package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/adarchive/adlib-gateway/http/middleware"
	"github.com/adarchive/adlib-gateway/http/registry"
	"github.com/adarchive/adlib-gateway/internal/constants"
	"github.com/adarchive/adlib-gateway/pkg/logger"
	"github.com/adarchive/adlib-gateway/pkg/response"
)

// Start initializes and starts the HTTP server
func Start(port int) error {
	e := echo.New()
	e.HideBanner = true

	log := logger.WithScope("startServer")

	// Browser callers hit the gateway directly, so CORS stays wide open.
	e.Use(echomw.CORS())
	e.Use(middleware.Logger)

	// Convert anything echo surfaces itself (404, 405, body-limit, panics
	// recovered by echo) into the {error} envelope. Request handlers map
	// their own errors before this runs.
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		he, ok := err.(*echo.HTTPError)
		if !ok {
			response.ErrorWithCode(c, constants.CodeInternalError)
			return
		}
		switch he.Code {
		case http.StatusNotFound:
			response.ErrorWithCode(c, constants.CodeNotFound)
		case http.StatusMethodNotAllowed:
			response.ErrorWithCode(c, constants.CodeMethodNotAllowed)
		default:
			message := constants.GetErrorMessage(constants.CodeInternalError)
			if he.Message != nil {
				message = fmt.Sprintf("%v", he.Message)
			}
			response.Error(c, he.Code, message)
		}
	}

	registry.SetupAllRoutes(e)
	log.Info().Interface("routes", e.Routes()).Msg("Registered routes")

	// Start server with graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", port)
		log.Info().Msg("Starting server on " + addr)
		if err := e.Start(addr); err != nil {
			log.Error().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
		return err
	}

	log.Info().Msg("Server gracefully stopped")
	return nil
}
