package dataset

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"assessment-prediction-api/config"
)

// ErrUpstream marks failures talking to or decoding the open-data endpoint,
// as opposed to local persistence or training failures.
var ErrUpstream = errors.New("upstream dataset error")

// Fetcher downloads the assessment export. Fetches are paced client-side so
// repeated reloads cannot hammer the open-data portal.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
	limit   int
	offset  int
}

func NewFetcher(cfg config.DatasetConfig) *Fetcher {
	every := rate.Inf
	if cfg.MinFetchIntervalSec > 0 {
		every = rate.Every(time.Duration(cfg.MinFetchIntervalSec) * time.Second)
	}
	return &Fetcher{
		client:  &http.Client{Timeout: time.Duration(cfg.FetchTimeoutSec) * time.Second},
		limiter: rate.NewLimiter(every, 1),
		baseURL: cfg.URL,
		limit:   cfg.Limit,
		offset:  cfg.Offset,
	}
}

// Fetch downloads and parses the dataset export. Every failure is wrapped in
// ErrUpstream so callers can map it to a gateway error.
func (f *Fetcher) Fetch(ctx context.Context) ([]Record, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	u, err := url.Parse(f.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid dataset url: %v", ErrUpstream, err)
	}
	q := u.Query()
	if f.limit > 0 {
		q.Set("$limit", strconv.Itoa(f.limit))
	}
	if f.offset > 0 {
		q.Set("$offset", strconv.Itoa(f.offset))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}

	records, err := ParseCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return records, nil
}
