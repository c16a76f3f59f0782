package adquery

import (
	"github.com/adarchive/adlib-gateway/pkg/archive"
)

// Output modes for a search request.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// SearchRequest is the raw JSON body shared by the search, count and
// trending endpoints. Required-ness of access_token/fields/country and the
// at-least-one search criterion rule are enforced by the ordered validator,
// not by struct tags, so pointer fields distinguish absent from empty.
type SearchRequest struct {
	AccessToken   *string `json:"access_token"`
	Fields        *string `json:"fields"`
	Country       *string `json:"country"`
	SearchTerm    *string `json:"search_term"`
	SearchPageIDs *string `json:"search_page_ids"`

	AdActiveStatus string `json:"ad_active_status" validate:"omitempty,oneof=ALL ACTIVE INACTIVE"`
	AfterDate      string `json:"after_date" validate:"omitempty,calendardate"`
	BatchSize      *int   `json:"batch_size" validate:"omitempty,min=1"`
	RetryLimit     *int   `json:"retry_limit" validate:"omitempty,min=0"`
	OutputFormat   string `json:"output_format" validate:"omitempty,oneof=json csv"`
}

// SearchParameters echoes the normalized criteria on list-mode responses.
type SearchParameters struct {
	Fields         []string `json:"fields"`
	Countries      []string `json:"countries"`
	SearchTerm     *string  `json:"search_term"`
	SearchPageIDs  *string  `json:"search_page_ids"`
	AdActiveStatus string   `json:"ad_active_status"`
	AfterDate      string   `json:"after_date"`
}

// SummaryParameters echoes the normalized criteria on count and trending
// responses, with countries as a comma-joined code string.
type SummaryParameters struct {
	SearchTerm     *string `json:"search_term"`
	Countries      string  `json:"countries"`
	SearchPageIDs  *string `json:"search_page_ids"`
	AdActiveStatus string  `json:"ad_active_status"`
	AfterDate      string  `json:"after_date"`
}

// SearchResponse is the list-mode payload.
type SearchResponse struct {
	Ads              []archive.Record `json:"ads"`
	Count            int              `json:"count"`
	Truncated        bool             `json:"truncated"`
	SearchParameters SearchParameters `json:"search_parameters"`
}

// CountResponse is the count-mode payload.
type CountResponse struct {
	Count            int               `json:"count"`
	SearchParameters SummaryParameters `json:"search_parameters"`
}

// TrendingPoint is one histogram bucket.
type TrendingPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TrendingResponse is the histogram-mode payload, buckets sorted by date
// ascending.
type TrendingResponse struct {
	TrendingData     []TrendingPoint   `json:"trending_data"`
	TotalCount       int               `json:"total_count"`
	SearchParameters SummaryParameters `json:"search_parameters"`
}
