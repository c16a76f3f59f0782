package adsearch

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/adarchive/adlib-gateway/pkg/archive"
)

// withStream redirects the package traverser to in-memory batches for the
// duration of a test.
func withStream(t *testing.T, batches []archive.Batch, streamErr error) {
	t.Helper()
	orig := Traverser
	Traverser = func(q archive.Query) archive.Stream {
		return archive.NewSliceStream(batches, streamErr)
	}
	t.Cleanup(func() { Traverser = orig })
}

func TestSearchReturnsRecordsAndEcho(t *testing.T) {
	withStream(t, []archive.Batch{makeBatch(3, ""), makeBatch(4, "")}, nil)

	req := validRequest()
	v, err := Validate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := Search(context.Background(), req, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Count != 7 || len(resp.Ads) != 7 {
		t.Errorf("count = %d, ads = %d, want 7", resp.Count, len(resp.Ads))
	}
	if resp.Truncated {
		t.Error("truncated should be false")
	}

	p := resp.SearchParameters
	if p.SearchTerm == nil || *p.SearchTerm != "shoes" {
		t.Errorf("search_term echo = %v, want shoes", p.SearchTerm)
	}
	if len(p.Fields) != 1 || p.Fields[0] != "ad_creative_body" {
		t.Errorf("fields echo = %v", p.Fields)
	}
	if len(p.Countries) != 1 || p.Countries[0] != "US" {
		t.Errorf("countries echo = %v", p.Countries)
	}
	if p.SearchPageIDs != nil {
		t.Errorf("search_page_ids echo = %v, want nil", p.SearchPageIDs)
	}
	if p.AdActiveStatus != "ALL" || p.AfterDate != "1970-01-01" {
		t.Errorf("defaults echo wrong: %+v", p)
	}
}

func TestSearchDiscardsPartialResultOnFailure(t *testing.T) {
	withStream(t, []archive.Batch{makeBatch(5, "")}, errors.New("rate limited"))

	req := validRequest()
	v, _ := Validate(req)

	resp, err := Search(context.Background(), req, v)
	if resp != nil {
		t.Error("partial response must be discarded on upstream failure")
	}
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestCountMatchesBatchSum(t *testing.T) {
	withStream(t, []archive.Batch{makeBatch(3, ""), makeBatch(4, "")}, nil)

	req := validRequest()
	v, _ := Validate(req)

	resp, err := Count(context.Background(), req, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Count != 7 {
		t.Errorf("count = %d, want 7", resp.Count)
	}

	p := resp.SearchParameters
	if p.Countries != "US" {
		t.Errorf("countries echo = %q, want US", p.Countries)
	}
	if p.SearchTerm == nil || *p.SearchTerm != "shoes" {
		t.Errorf("search_term echo = %v, want shoes", p.SearchTerm)
	}
	if p.SearchPageIDs != nil {
		t.Errorf("search_page_ids echo = %v, want nil", p.SearchPageIDs)
	}
	if p.AdActiveStatus != "ALL" || p.AfterDate != "1970-01-01" {
		t.Errorf("defaults echo wrong: %+v", p)
	}
}

func TestCountEchoesSentinelTermAsNil(t *testing.T) {
	withStream(t, nil, nil)

	req := validRequest()
	req.SearchTerm = nil
	req.SearchPageIDs = strPtr("123")

	v, _ := Validate(req)
	resp, err := Count(context.Background(), req, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.SearchParameters.SearchTerm != nil {
		t.Error("match-any sentinel must echo as null")
	}
	if resp.SearchParameters.SearchPageIDs == nil || *resp.SearchParameters.SearchPageIDs != "123" {
		t.Errorf("search_page_ids echo = %v, want 123", resp.SearchParameters.SearchPageIDs)
	}
}

func TestTrendingSortsBucketsAndSumsTotal(t *testing.T) {
	withStream(t, []archive.Batch{
		makeBatch(2, "2024-05-03"),
		makeBatch(5, "2024-05-01"),
		makeBatch(3, "2024-05-02"),
		makeBatch(1, "2024-05-01"),
	}, nil)

	req := validRequest()
	v, _ := Validate(req)

	resp, err := Trending(context.Background(), req, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !sort.SliceIsSorted(resp.TrendingData, func(i, j int) bool {
		return resp.TrendingData[i].Date < resp.TrendingData[j].Date
	}) {
		t.Errorf("trending data not sorted: %+v", resp.TrendingData)
	}

	sum := 0
	for _, p := range resp.TrendingData {
		sum += p.Count
	}
	if sum != resp.TotalCount || sum != 11 {
		t.Errorf("sum = %d, total = %d, want both 11", sum, resp.TotalCount)
	}

	if resp.TrendingData[0].Date != "2024-05-01" || resp.TrendingData[0].Count != 6 {
		t.Errorf("first bucket = %+v, want 2024-05-01/6", resp.TrendingData[0])
	}
}

func TestTrendingEmptyStream(t *testing.T) {
	withStream(t, nil, nil)

	req := validRequest()
	v, _ := Validate(req)

	resp, err := Trending(context.Background(), req, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TotalCount != 0 || len(resp.TrendingData) != 0 {
		t.Errorf("expected empty histogram, got %+v", resp)
	}
	if resp.TrendingData == nil {
		t.Error("trending_data must encode as [], not null")
	}
}

func TestSearchCSVWritesHeaderAndRows(t *testing.T) {
	batches := []archive.Batch{{
		archive.Record{"ad_creative_body": "first ad", "page_name": "Acme"},
		archive.Record{"ad_creative_body": "second, with comma", "page_name": "Acme"},
	}}
	withStream(t, batches, nil)

	req := validRequest()
	req.Fields = strPtr("ad_creative_body,page_name")
	v, err := Validate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := SearchCSV(context.Background(), req, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows:\n%s", len(lines), data)
	}
	if lines[0] != "ad_creative_body,page_name" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], `"second, with comma"`) {
		t.Errorf("comma cell not quoted: %q", lines[2])
	}
}

func TestSearchCSVPropagatesUpstreamFailure(t *testing.T) {
	withStream(t, []archive.Batch{makeBatch(2, "")}, errors.New("boom"))

	req := validRequest()
	v, _ := Validate(req)

	data, err := SearchCSV(context.Background(), req, v)
	if data != nil {
		t.Error("no CSV bytes expected on failure")
	}
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}
