package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/adarchive/adlib-gateway/internal/catalog"
	"github.com/adarchive/adlib-gateway/pkg/response"
)

type fieldsResponse struct {
	Fields      []string `json:"fields"`
	Description string   `json:"description"`
}

type operatorsResponse struct {
	Operators   []string `json:"operators"`
	Description string   `json:"description"`
}

// GetFields returns the static catalog of requestable archive fields.
func GetFields(c echo.Context) error {
	return response.OK(c, fieldsResponse{
		Fields:      catalog.Fields(),
		Description: "These fields can be requested from the ad archive",
	})
}

// GetOperators returns the static catalog of result operators.
func GetOperators(c echo.Context) error {
	return response.OK(c, operatorsResponse{
		Operators:   catalog.OperatorNames(),
		Description: "These operators can be applied to archive query results",
	})
}
