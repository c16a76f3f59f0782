package route

import (
	"github.com/labstack/echo/v4"

	"github.com/adarchive/adlib-gateway/http/api/handler"
	"github.com/adarchive/adlib-gateway/http/registry"
)

// init registers the ad archive API routes.
func init() {
	registry.Register("api", func(g *echo.Group) {
		g.POST("/search", handler.SearchAds)
		g.POST("/count", handler.CountAds)
		g.POST("/trending", handler.TrendingAds)
		g.GET("/fields", handler.GetFields)
		g.GET("/operators", handler.GetOperators)
	})
}
