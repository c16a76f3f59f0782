package adsearch

import (
	"context"
	"errors"
	"io"

	"github.com/adarchive/adlib-gateway/pkg/archive"
)

// maxListResults caps list-mode accumulation to bound response size. The
// triggering batch is always included whole, so the final count may exceed
// the cap by up to one batch length.
const maxListResults = 10000

// foldFunc consumes one batch. Returning stop ends consumption early; a
// non-nil error aborts it and propagates unchanged.
type foldFunc func(b archive.Batch) (stop bool, err error)

// consume drives the stream strictly sequentially, one batch in flight,
// applying fold to every batch until exhaustion, early stop, or failure.
// Stream failures surface as *UpstreamError; partial accumulation is the
// caller's to discard.
func consume(ctx context.Context, s archive.Stream, fold foldFunc) error {
	for {
		batch, err := s.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &UpstreamError{cause: err}
		}
		stop, err := fold(batch)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
}

// listAccumulator folds batches into an ordered record list with the
// global cap.
type listAccumulator struct {
	records   []archive.Record
	count     int
	truncated bool
}

func (a *listAccumulator) fold(b archive.Batch) (bool, error) {
	a.records = append(a.records, b...)
	a.count += len(b)
	if a.count >= maxListResults {
		a.truncated = true
		return true, nil
	}
	return false, nil
}

// countAccumulator folds batches into a scalar count, uncapped.
type countAccumulator struct {
	count int
}

func (a *countAccumulator) fold(b archive.Batch) (bool, error) {
	a.count += len(b)
	return false, nil
}

// unknownDateBucket collects records whose delivery start date is absent or
// unparsable, keeping the bucket sum equal to the records consumed.
const unknownDateBucket = "unknown"

// histogramAccumulator folds batches into per-day delivery start counts,
// uncapped.
type histogramAccumulator struct {
	buckets map[string]int
	total   int
}

func newHistogramAccumulator() *histogramAccumulator {
	return &histogramAccumulator{buckets: make(map[string]int)}
}

func (a *histogramAccumulator) fold(b archive.Batch) (bool, error) {
	for _, rec := range b {
		date, ok := archive.RecordStartDate(rec)
		if !ok {
			date = unknownDateBucket
		}
		a.buckets[date]++
		a.total++
	}
	return false, nil
}
