package adsearch

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/adarchive/adlib-gateway/internal/entities/adquery"
	"github.com/adarchive/adlib-gateway/pkg/archive"
)

// writeSearchCSV streams every batch into a CSV file at path, one column
// per requested field in request order. The CSV path carries no result
// cap; it exhausts the stream like the upstream save_to_csv operator.
func writeSearchCSV(ctx context.Context, s archive.Stream, fields []string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(fields); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	err = consume(ctx, s, func(b archive.Batch) (bool, error) {
		row := make([]string, len(fields))
		for _, rec := range b {
			for i, field := range fields {
				row[i] = cellValue(rec[field])
			}
			if err := w.Write(row); err != nil {
				return false, fmt.Errorf("csv: write row: %w", err)
			}
		}
		return false, nil
	})
	if err != nil {
		return err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return nil
}

// cellValue renders a record value as a CSV cell. Scalars keep their
// natural form; lists and nested objects are JSON-encoded.
func cellValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}

// writeTrendingCSV folds the stream into per-day buckets and writes them
// to path as a date,count CSV sorted ascending by date.
func writeTrendingCSV(ctx context.Context, s archive.Stream, path string) error {
	acc := newHistogramAccumulator()
	if err := consume(ctx, s, acc.fold); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("trending: create %s: %w", path, err)
	}
	defer f.Close()

	dates := make([]string, 0, len(acc.buckets))
	for d := range acc.buckets {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	w := csv.NewWriter(f)
	if err := w.Write([]string{"start_time", "count"}); err != nil {
		return fmt.Errorf("trending: write header: %w", err)
	}
	for _, d := range dates {
		if err := w.Write([]string{d, strconv.Itoa(acc.buckets[d])}); err != nil {
			return fmt.Errorf("trending: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("trending: flush: %w", err)
	}
	return nil
}

// readTrendingCSV parses a date,count CSV back into sorted trending
// points. Malformed content is an internal error, not an upstream one.
func readTrendingCSV(path string) ([]adquery.TrendingPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trending: open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("trending: parse csv: %w", err)
	}

	points := make([]adquery.TrendingPoint, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("trending: malformed row %d", i)
		}
		count, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("trending: malformed count in row %d: %w", i, err)
		}
		points = append(points, adquery.TrendingPoint{
			Date:  strings.TrimSpace(row[0]),
			Count: count,
		})
	}
	return points, nil
}
