package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/adarchive/adlib-gateway/pkg/response"
	"github.com/adarchive/adlib-gateway/pkg/utils"
)

type homeResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	Documentation string `json:"documentation"`
	Timestamp     string `json:"timestamp"`
}

// Home reports service liveness and metadata.
func Home(c echo.Context) error {
	return response.OK(c, homeResponse{
		Status:        "online",
		Message:       "Ad Library Archive Gateway",
		Documentation: "See README for usage details",
		Timestamp:     utils.NowFormatted(),
	})
}
