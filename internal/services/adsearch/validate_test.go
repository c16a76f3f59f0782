package adsearch

import (
	"errors"
	"strings"
	"testing"

	"github.com/adarchive/adlib-gateway/internal/constants"
	"github.com/adarchive/adlib-gateway/internal/entities/adquery"
)

func strPtr(s string) *string {
	return &s
}

func validRequest() *adquery.SearchRequest {
	return &adquery.SearchRequest{
		AccessToken: strPtr("T"),
		Fields:      strPtr("ad_creative_body"),
		Country:     strPtr("US"),
		SearchTerm:  strPtr("shoes"),
	}
}

func TestValidateMissingRequiredParameter(t *testing.T) {
	cases := []struct {
		name  string
		strip func(r *adquery.SearchRequest)
	}{
		{"access_token", func(r *adquery.SearchRequest) { r.AccessToken = nil }},
		{"fields", func(r *adquery.SearchRequest) { r.Fields = nil }},
		{"country", func(r *adquery.SearchRequest) { r.Country = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			// Other fields stay invalid on purpose: the missing-parameter
			// check must win regardless.
			req.Fields = strPtr("not_a_field")
			req.Country = strPtr("Atlantis")
			tc.strip(req)

			_, err := Validate(req)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Code != constants.CodeMissingParameter {
				t.Errorf("code = %d, want %d", ve.Code, constants.CodeMissingParameter)
			}
			if !strings.Contains(ve.Error(), tc.name) {
				t.Errorf("message %q does not name %q", ve.Error(), tc.name)
			}
		})
	}
}

func TestValidateMissingSearchCriterion(t *testing.T) {
	req := validRequest()
	req.SearchTerm = nil
	req.SearchPageIDs = nil

	_, err := Validate(req)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Code != constants.CodeMissingSearchCriterion {
		t.Errorf("code = %d, want %d", ve.Code, constants.CodeMissingSearchCriterion)
	}
	if !strings.Contains(ve.Error(), "At least one of") {
		t.Errorf("unexpected message %q", ve.Error())
	}
}

func TestValidatePageIDsAloneSatisfyCriterion(t *testing.T) {
	req := validRequest()
	req.SearchTerm = nil
	req.SearchPageIDs = strPtr("123,456")

	if _, err := Validate(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateInvalidFieldsListsOnlyBadTokens(t *testing.T) {
	req := validRequest()
	req.Fields = strPtr("ad_creative_body, bogus_field ,page_name,another_bad")

	_, err := Validate(req)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Code != constants.CodeInvalidFields {
		t.Errorf("code = %d, want %d", ve.Code, constants.CodeInvalidFields)
	}
	msg := ve.Error()
	for _, bad := range []string{"bogus_field", "another_bad"} {
		if !strings.Contains(msg, bad) {
			t.Errorf("message %q missing invalid token %q", msg, bad)
		}
	}
	for _, good := range []string{"ad_creative_body", "page_name"} {
		if strings.Contains(msg, good) {
			t.Errorf("message %q lists valid token %q", msg, good)
		}
	}
}

func TestValidateInvalidCountriesListsOnlyBadTokens(t *testing.T) {
	req := validRequest()
	req.Country = strPtr("US, Atlantis ,DE,Narnia")

	_, err := Validate(req)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Code != constants.CodeInvalidCountries {
		t.Errorf("code = %d, want %d", ve.Code, constants.CodeInvalidCountries)
	}
	msg := ve.Error()
	for _, bad := range []string{"Atlantis", "Narnia"} {
		if !strings.Contains(msg, bad) {
			t.Errorf("message %q missing invalid token %q", msg, bad)
		}
	}
	if strings.Contains(msg, "US") || strings.Contains(msg, "DE") {
		t.Errorf("message %q lists valid tokens", msg)
	}
}

func TestValidateNormalizesCountryTokens(t *testing.T) {
	req := validRequest()
	req.Country = strPtr("us, United Kingdom ,DE")

	v, err := Validate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCodes := []string{"US", "GB", "DE"}
	if len(v.Codes) != len(wantCodes) {
		t.Fatalf("codes = %v, want %v", v.Codes, wantCodes)
	}
	for i, want := range wantCodes {
		if v.Codes[i] != want {
			t.Errorf("codes[%d] = %q, want %q", i, v.Codes[i], want)
		}
	}
	// Raw tokens survive trimmed but un-normalized for the echo.
	if v.Countries[1] != "United Kingdom" {
		t.Errorf("countries[1] = %q, want raw token", v.Countries[1])
	}
}

func TestValidateOrderingFieldCheckBeforeCountryCheck(t *testing.T) {
	req := validRequest()
	req.Fields = strPtr("bogus_field")
	req.Country = strPtr("Atlantis")

	_, err := Validate(req)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Code != constants.CodeInvalidFields {
		t.Errorf("field check should win, got code %d", ve.Code)
	}
}
