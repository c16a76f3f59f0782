package adsearch

import (
	"context"
	"os"
	"strings"

	"github.com/adarchive/adlib-gateway/internal/entities/adquery"
	"github.com/adarchive/adlib-gateway/pkg/archive"
	"github.com/adarchive/adlib-gateway/pkg/logger"
	"github.com/adarchive/adlib-gateway/pkg/tempfile"
)

// Traverser starts an archive traversal for a built query. Package level
// so tests and embedders can substitute a factory backed by in-memory
// streams.
var Traverser = archive.Traverse

// Search runs list mode: accumulate records up to the global cap and
// report whether the result was truncated.
func Search(ctx context.Context, req *adquery.SearchRequest, v *Validated) (*adquery.SearchResponse, error) {
	q := BuildQuery(req, v, ModeList)

	acc := &listAccumulator{}
	if err := consume(ctx, Traverser(q), acc.fold); err != nil {
		return nil, err
	}

	records := acc.records
	if records == nil {
		records = []archive.Record{}
	}

	logger.WithScope("adsearch").Info().
		Int("count", len(records)).
		Bool("truncated", acc.truncated).
		Msg("Search completed")

	return &adquery.SearchResponse{
		Ads:              records,
		Count:            len(records),
		Truncated:        acc.truncated,
		SearchParameters: searchEcho(req, v, q),
	}, nil
}

// SearchCSV runs list mode with CSV output: batches stream into a
// request-scoped temp file which is read back and removed on every exit
// path.
func SearchCSV(ctx context.Context, req *adquery.SearchRequest, v *Validated) ([]byte, error) {
	q := BuildQuery(req, v, ModeList)

	var out []byte
	err := tempfile.WithFile("ads-*.csv", func(path string) error {
		if err := writeSearchCSV(ctx, Traverser(q), q.Fields, path); err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Count runs count mode: exhaust the stream and sum batch lengths.
func Count(ctx context.Context, req *adquery.SearchRequest, v *Validated) (*adquery.CountResponse, error) {
	q := BuildQuery(req, v, ModeCount)

	acc := &countAccumulator{}
	if err := consume(ctx, Traverser(q), acc.fold); err != nil {
		return nil, err
	}

	return &adquery.CountResponse{
		Count:            acc.count,
		SearchParameters: summaryEcho(req, q),
	}, nil
}

// Trending runs histogram mode: bucket records by delivery start day,
// round-trip the buckets through a scoped temp CSV, and emit them sorted
// ascending by date.
func Trending(ctx context.Context, req *adquery.SearchRequest, v *Validated) (*adquery.TrendingResponse, error) {
	q := BuildQuery(req, v, ModeTrending)

	var points []adquery.TrendingPoint
	err := tempfile.WithFile("trending-*.csv", func(path string) error {
		if err := writeTrendingCSV(ctx, Traverser(q), path); err != nil {
			return err
		}
		pts, err := readTrendingCSV(path)
		if err != nil {
			return err
		}
		points = pts
		return nil
	})
	if err != nil {
		return nil, err
	}

	if points == nil {
		points = []adquery.TrendingPoint{}
	}
	total := 0
	for _, p := range points {
		total += p.Count
	}

	return &adquery.TrendingResponse{
		TrendingData:     points,
		TotalCount:       total,
		SearchParameters: summaryEcho(req, q),
	}, nil
}

// searchEcho builds the normalized parameter echo for list mode. The
// sentinel match-any term renders as null, as does an absent page-id list.
func searchEcho(req *adquery.SearchRequest, v *Validated, q archive.Query) adquery.SearchParameters {
	return adquery.SearchParameters{
		Fields:         v.Fields,
		Countries:      v.Countries,
		SearchTerm:     echoTerm(q),
		SearchPageIDs:  echoPageIDs(req),
		AdActiveStatus: q.ActiveStatus,
		AfterDate:      q.AfterDate,
	}
}

// summaryEcho builds the parameter echo for count and trending mode, with
// countries as the comma-joined canonical code string.
func summaryEcho(req *adquery.SearchRequest, q archive.Query) adquery.SummaryParameters {
	return adquery.SummaryParameters{
		SearchTerm:     echoTerm(q),
		Countries:      strings.Join(q.Countries, ","),
		SearchPageIDs:  echoPageIDs(req),
		AdActiveStatus: q.ActiveStatus,
		AfterDate:      q.AfterDate,
	}
}

func echoTerm(q archive.Query) *string {
	if q.SearchTerm == archive.MatchAnyTerm {
		return nil
	}
	term := q.SearchTerm
	return &term
}

func echoPageIDs(req *adquery.SearchRequest) *string {
	if req.SearchPageIDs == nil || *req.SearchPageIDs == "" {
		return nil
	}
	return req.SearchPageIDs
}
