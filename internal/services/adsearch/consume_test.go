package adsearch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/adarchive/adlib-gateway/pkg/archive"
)

func makeBatch(size int, startDate string) archive.Batch {
	b := make(archive.Batch, size)
	for i := range b {
		rec := archive.Record{"id": fmt.Sprintf("ad-%d", i)}
		if startDate != "" {
			rec[archive.StartTimeField] = startDate
		}
		b[i] = rec
	}
	return b
}

func TestListFoldAccumulatesAllBatches(t *testing.T) {
	stream := archive.NewSliceStream([]archive.Batch{
		makeBatch(3, ""),
		makeBatch(4, ""),
	}, nil)

	acc := &listAccumulator{}
	if err := consume(context.Background(), stream, acc.fold); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc.count != 7 || len(acc.records) != 7 {
		t.Errorf("count = %d, records = %d, want 7", acc.count, len(acc.records))
	}
	if acc.truncated {
		t.Error("truncated should be false when the stream is exhausted below the cap")
	}
}

func TestListFoldIsDeterministic(t *testing.T) {
	batches := []archive.Batch{makeBatch(2, ""), makeBatch(5, "")}

	run := func() *listAccumulator {
		acc := &listAccumulator{}
		if err := consume(context.Background(), archive.NewSliceStream(batches, nil), acc.fold); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return acc
	}

	a, b := run(), run()
	if a.count != b.count || a.truncated != b.truncated || len(a.records) != len(b.records) {
		t.Errorf("replaying the same batches produced different results: %+v vs %+v", a, b)
	}
}

func TestListFoldTruncatesWholeBatch(t *testing.T) {
	// 9,999 + 500: the second batch crosses the cap and must be kept whole.
	stream := archive.NewSliceStream([]archive.Batch{
		makeBatch(9999, ""),
		makeBatch(500, ""),
		makeBatch(100, ""), // must never be pulled
	}, errors.New("stream pulled past the stop point"))

	acc := &listAccumulator{}
	if err := consume(context.Background(), stream, acc.fold); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !acc.truncated {
		t.Error("truncated should be true once the cap is reached")
	}
	if acc.count != 10499 {
		t.Errorf("count = %d, want 10499 (triggering batch included whole)", acc.count)
	}
}

func TestListFoldTruncatesOnSingleOversizedBatch(t *testing.T) {
	stream := archive.NewSliceStream([]archive.Batch{makeBatch(10001, "")}, nil)

	acc := &listAccumulator{}
	if err := consume(context.Background(), stream, acc.fold); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc.count != 10001 {
		t.Errorf("count = %d, want 10001", acc.count)
	}
	if !acc.truncated {
		t.Error("truncated should be true for a 10001-record batch")
	}
}

func TestCountFoldExhaustsStream(t *testing.T) {
	stream := archive.NewSliceStream([]archive.Batch{
		makeBatch(9999, ""),
		makeBatch(500, ""),
		makeBatch(100, ""),
	}, nil)

	acc := &countAccumulator{}
	if err := consume(context.Background(), stream, acc.fold); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc.count != 10599 {
		t.Errorf("count = %d, want 10599 (count mode has no cap)", acc.count)
	}
}

func TestHistogramFoldBucketsByDay(t *testing.T) {
	stream := archive.NewSliceStream([]archive.Batch{
		makeBatch(3, "2024-05-01"),
		makeBatch(2, "2024-05-02"),
		makeBatch(4, "2024-05-01"),
		makeBatch(1, ""), // no start date
	}, nil)

	acc := newHistogramAccumulator()
	if err := consume(context.Background(), stream, acc.fold); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if acc.buckets["2024-05-01"] != 7 {
		t.Errorf("bucket 2024-05-01 = %d, want 7", acc.buckets["2024-05-01"])
	}
	if acc.buckets["2024-05-02"] != 2 {
		t.Errorf("bucket 2024-05-02 = %d, want 2", acc.buckets["2024-05-02"])
	}
	if acc.buckets[unknownDateBucket] != 1 {
		t.Errorf("unknown bucket = %d, want 1", acc.buckets[unknownDateBucket])
	}

	sum := 0
	for _, n := range acc.buckets {
		sum += n
	}
	if sum != acc.total || sum != 10 {
		t.Errorf("bucket sum = %d, total = %d, want both 10", sum, acc.total)
	}
}

func TestConsumeWrapsStreamFailure(t *testing.T) {
	cause := errors.New("connection reset")
	stream := archive.NewSliceStream([]archive.Batch{makeBatch(3, "")}, cause)

	acc := &countAccumulator{}
	err := consume(context.Background(), stream, acc.fold)

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("UpstreamError should wrap the underlying cause")
	}
	if ue.Error() != cause.Error() {
		t.Errorf("message = %q, want underlying %q", ue.Error(), cause.Error())
	}
}

func TestConsumeStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stream := archive.NewSliceStream([]archive.Batch{makeBatch(3, "")}, nil)
	err := consume(ctx, stream, (&countAccumulator{}).fold)

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled cause, got %v", err)
	}
}
