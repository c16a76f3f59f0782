package archive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/adarchive/adlib-gateway/config"
	"github.com/adarchive/adlib-gateway/pkg/logger"
)

const (
	defaultBaseURL = "https://graph.facebook.com/v18.0/ads_archive"
	defaultTimeout = 60 * time.Second
	defaultRPS     = 5
	defaultBurst   = 5
)

// Config controls the HTTP archive client.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// Client talks to the remote ads archive. It is safe for concurrent use;
// the rate limiter is shared across all traversals.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates an archive client, filling zero config values with
// defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaultRPS
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

var defaultClient *Client

// Init builds the package-level client from application config.
func Init() error {
	cfg := config.Get().Archive
	if cfg.BaseURL != "" {
		if _, err := url.Parse(cfg.BaseURL); err != nil {
			return fmt.Errorf("archive: invalid base URL %q: %w", cfg.BaseURL, err)
		}
	}
	timeout, _ := time.ParseDuration(cfg.Timeout)
	defaultClient = NewClient(Config{
		BaseURL:           cfg.BaseURL,
		Timeout:           timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
	})
	logger.WithScope("archive").Info().
		Str("base_url", defaultClient.baseURL).
		Float64("rps", cfg.RequestsPerSecond).
		Msg("Archive client initialized")
	return nil
}

// Traverse starts a traversal on the package-level client.
func Traverse(q Query) Stream {
	return defaultClient.Traverse(q)
}

// Traverse returns a Stream that pages through all archive results for q.
func (c *Client) Traverse(q Query) Stream {
	return &traversal{client: c, query: q}
}

// page is one decoded archive response.
type page struct {
	Data   []Record `json:"data"`
	Paging struct {
		Cursors struct {
			Before string `json:"before"`
			After  string `json:"after"`
		} `json:"cursors"`
		Next string `json:"next"`
	} `json:"paging"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("archive API error (%s, code %d): %s", e.Type, e.Code, e.Message)
}

// traversal walks the cursor chain one page at a time. Not safe for
// concurrent use; the consumer pulls strictly sequentially.
type traversal struct {
	client  *Client
	query   Query
	nextURL string
	started bool
	done    bool
}

// Next fetches the next page, applying the retry budget and after-date
// filtering. Returns io.EOF once the cursor chain ends or the page window
// falls entirely before the after-date cutoff.
func (t *traversal) Next(ctx context.Context) (Batch, error) {
	if t.done {
		return nil, io.EOF
	}

	reqURL := t.nextURL
	if !t.started {
		reqURL = t.firstURL()
		t.started = true
	}
	if reqURL == "" {
		t.done = true
		return nil, io.EOF
	}

	p, err := t.client.fetchPage(ctx, reqURL, t.query.RetryLimit)
	if err != nil {
		t.done = true
		return nil, err
	}

	t.nextURL = p.Paging.Next
	if t.nextURL == "" {
		t.done = true
	}

	batch, exhausted := filterAfterDate(Batch(p.Data), t.query.AfterDate)
	if exhausted {
		t.done = true
	}
	return batch, nil
}

// firstURL builds the initial request URL from the query descriptor.
// Subsequent pages follow the server-provided paging.next link.
func (t *traversal) firstURL() string {
	q := t.query
	params := url.Values{}
	params.Set("access_token", q.AccessToken)
	params.Set("fields", strings.Join(q.Fields, ","))
	params.Set("search_terms", q.SearchTerm)
	params.Set("ad_reached_countries", strings.Join(q.Countries, ","))
	if len(q.SearchPageIDs) > 0 {
		params.Set("search_page_ids", strings.Join(q.SearchPageIDs, ","))
	}
	params.Set("ad_active_status", q.ActiveStatus)
	params.Set("limit", fmt.Sprintf("%d", q.PageLimit))
	return t.client.baseURL + "?" + params.Encode()
}

// fetchPage retrieves one page, retrying transient failures up to
// retryLimit additional attempts with linear backoff.
func (c *Client) fetchPage(ctx context.Context, reqURL string, retryLimit int) (*page, error) {
	var lastErr error
	for attempt := 0; attempt <= retryLimit; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		p, retryable, err := c.doFetch(ctx, reqURL)
		if err == nil {
			return p, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		logger.WithScope("archive").Warn().
			Err(err).
			Int("attempt", attempt+1).
			Msg("Transient archive fetch failure, retrying")
	}
	return nil, fmt.Errorf("archive: retry budget exhausted after %d attempts: %w", retryLimit+1, lastErr)
}

// doFetch performs a single page request. The second return value reports
// whether the failure is worth retrying.
func (c *Client) doFetch(ctx context.Context, reqURL string) (*page, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("archive: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("archive: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("archive: HTTP %d from archive", resp.StatusCode)
	}

	var p page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, false, fmt.Errorf("archive: decode response: %w", err)
	}
	if p.Error != nil {
		return nil, false, p.Error
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("archive: HTTP %d from archive", resp.StatusCode)
	}
	return &p, false, nil
}

// filterAfterDate drops records whose delivery start is before the cutoff.
// The archive returns records newest-first, so once the last record of a
// page falls before the cutoff no later page can match and the traversal
// can stop.
func filterAfterDate(b Batch, afterDate string) (Batch, bool) {
	if afterDate == "" || afterDate == EpochDate {
		return b, false
	}
	cutoff, err := time.Parse("2006-01-02", afterDate)
	if err != nil || len(b) == 0 {
		return b, false
	}

	kept := make(Batch, 0, len(b))
	for _, rec := range b {
		start, ok := RecordStartDay(rec)
		if !ok || !start.Before(cutoff) {
			kept = append(kept, rec)
		}
	}

	exhausted := false
	if last, ok := RecordStartDay(b[len(b)-1]); ok && last.Before(cutoff) {
		exhausted = true
	}
	return kept, exhausted
}

// RecordStartDay extracts the delivery start time of a record at day
// granularity. Accepts both date-only and RFC3339 timestamps.
func RecordStartDay(rec Record) (time.Time, bool) {
	date, ok := RecordStartDate(rec)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// RecordStartDate returns the delivery start date of a record as a
// YYYY-MM-DD string, the bucket key used by trending aggregation.
func RecordStartDate(rec Record) (string, bool) {
	raw, ok := rec[StartTimeField].(string)
	if !ok || raw == "" {
		return "", false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05-0700"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
