package adsearch

import (
	"strings"

	"github.com/adarchive/adlib-gateway/internal/catalog"
	"github.com/adarchive/adlib-gateway/internal/entities/adquery"
)

// Validated carries the token lists extracted during validation: trimmed
// field tokens, the country tokens as the caller wrote them, and their
// canonical ISO codes in the same order.
type Validated struct {
	Fields    []string
	Countries []string
	Codes     []string
}

// Validate applies the ordered request constraints, first failure wins:
// required parameters, at-least-one search criterion, field catalog
// membership, country resolvability. A single bad token invalidates the
// whole request.
func Validate(req *adquery.SearchRequest) (*Validated, error) {
	for _, p := range []struct {
		name  string
		value *string
	}{
		{"access_token", req.AccessToken},
		{"fields", req.Fields},
		{"country", req.Country},
	} {
		if p.value == nil {
			return nil, errMissingParameter(p.name)
		}
	}

	if req.SearchTerm == nil && req.SearchPageIDs == nil {
		return nil, errMissingSearchCriterion()
	}

	fields := splitTokens(*req.Fields)
	var invalidFields []string
	for _, f := range fields {
		if !catalog.IsValidField(f) {
			invalidFields = append(invalidFields, f)
		}
	}
	if len(invalidFields) > 0 {
		return nil, errInvalidFields(invalidFields)
	}

	countries := splitTokens(*req.Country)
	codes := make([]string, 0, len(countries))
	var invalidCountries []string
	for _, c := range countries {
		code, ok := catalog.CountryCode(c)
		if !ok {
			invalidCountries = append(invalidCountries, c)
			continue
		}
		codes = append(codes, code)
	}
	if len(invalidCountries) > 0 {
		return nil, errInvalidCountries(invalidCountries)
	}

	return &Validated{Fields: fields, Countries: countries, Codes: codes}, nil
}

// splitTokens splits a comma-separated parameter into trimmed, non-empty
// tokens.
func splitTokens(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, ",") {
		if t := strings.TrimSpace(tok); t != "" {
			out = append(out, t)
		}
	}
	return out
}
