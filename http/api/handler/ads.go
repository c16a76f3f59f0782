package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/adarchive/adlib-gateway/internal/entities/adquery"
	"github.com/adarchive/adlib-gateway/internal/services/adsearch"
	"github.com/adarchive/adlib-gateway/pkg/logger"
	"github.com/adarchive/adlib-gateway/pkg/response"
)

// csvFilename is the attachment name for CSV search output.
const csvFilename = "ad_archive.csv"

// SearchAds handles POST /api/search: list mode, JSON or CSV output.
func SearchAds(c echo.Context) error {
	var req adquery.SearchRequest
	v, err := bindAndValidate(c, &req)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if strings.ToLower(req.OutputFormat) == adquery.FormatCSV {
		data, err := adsearch.SearchCSV(ctx, &req, v)
		if err != nil {
			return fail(c, "SearchAds", err)
		}
		return response.CSV(c, csvFilename, data)
	}

	resp, err := adsearch.Search(ctx, &req, v)
	if err != nil {
		return fail(c, "SearchAds", err)
	}
	return response.OK(c, resp)
}

// CountAds handles POST /api/count: scalar count of matching ads.
func CountAds(c echo.Context) error {
	var req adquery.SearchRequest
	v, err := bindAndValidate(c, &req)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, err.Error())
	}

	resp, err := adsearch.Count(c.Request().Context(), &req, v)
	if err != nil {
		return fail(c, "CountAds", err)
	}
	return response.OK(c, resp)
}

// TrendingAds handles POST /api/trending: ads bucketed by delivery start
// date.
func TrendingAds(c echo.Context) error {
	var req adquery.SearchRequest
	v, err := bindAndValidate(c, &req)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, err.Error())
	}

	resp, err := adsearch.Trending(c.Request().Context(), &req, v)
	if err != nil {
		return fail(c, "TrendingAds", err)
	}
	return response.OK(c, resp)
}

// bindAndValidate binds the JSON body, applies the ordered domain checks
// (required params, search criterion, field and country catalogs) and then
// struct-tag validation of the optional parameters.
func bindAndValidate(c echo.Context, req *adquery.SearchRequest) (*adsearch.Validated, error) {
	if err := c.Bind(req); err != nil {
		return nil, errors.New("Invalid JSON payload")
	}
	v, err := adsearch.Validate(req)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(req); err != nil {
		return nil, err
	}
	return v, nil
}

// fail converts a service error into the {error} envelope: validation
// problems are the caller's (400), everything else is a server-side
// failure (500). Nothing propagates past this point.
func fail(c echo.Context, scope string, err error) error {
	var ve *adsearch.ValidationError
	if errors.As(err, &ve) {
		return response.Error(c, http.StatusBadRequest, ve.Error())
	}

	var ue *adsearch.UpstreamError
	if errors.As(err, &ue) {
		logger.WithScope(scope).Error().Err(err).Msg("Upstream archive failure")
	} else {
		logger.WithScope(scope).Error().Err(err).Msg("Internal failure")
	}
	return response.Error(c, http.StatusInternalServerError, err.Error())
}
