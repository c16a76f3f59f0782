package archive

import (
	"context"
	"io"
)

// Record is one ad archive entry as returned by the remote API. Beyond the
// delivery start time used by trending aggregation the gateway treats the
// contents as opaque.
type Record map[string]any

// Batch is one page of records from a single remote fetch.
type Batch []Record

// StartTimeField carries the delivery start timestamp used for trending
// aggregation and after-date filtering.
const StartTimeField = "ad_delivery_start_time"

// Stream yields successive batches of ad records. Next returns io.EOF once
// the sequence is exhausted. Streams are finite, not restartable, and must
// be consumed from a single goroutine.
type Stream interface {
	Next(ctx context.Context) (Batch, error)
}

// sliceStream serves pre-built batches, then a terminal error.
type sliceStream struct {
	batches []Batch
	err     error
	pos     int
}

// NewSliceStream returns a Stream that serves the given batches in order
// and then terminates with err, or io.EOF when err is nil. Used by tests
// and by callers that already hold materialized pages.
func NewSliceStream(batches []Batch, err error) Stream {
	if err == nil {
		err = io.EOF
	}
	return &sliceStream{batches: batches, err: err}
}

func (s *sliceStream) Next(ctx context.Context) (Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.batches) {
		return nil, s.err
	}
	b := s.batches[s.pos]
	s.pos++
	return b, nil
}
