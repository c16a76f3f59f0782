package route

import (
	"github.com/labstack/echo/v4"

	"github.com/adarchive/adlib-gateway/http/api/handler"
	"github.com/adarchive/adlib-gateway/http/registry"
)

// init registers the root status route.
func init() {
	registry.Register("", func(g *echo.Group) {
		g.GET("/", handler.Home)
	})
}
