package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"eventhub/pkg/models"
)

// Feed pulls raw records from a scraper feed endpoint that serves
// already-collected records as a JSON array of loose objects:
//
//	GET {BaseURL}{Path}?max=50&headless=true
//	[
//	  {"title": "...", "date": "15/02/2026", "price": "Free", ...},
//	  ...
//	]
//
// Field names inside the objects are whatever the upstream scraper
// produced; no mapping happens here.
type Feed struct {
	key     string
	BaseURL string
	Path    string
	Client  *http.Client
}

func NewFeed(key, baseURL, path string, timeout time.Duration) *Feed {
	if path == "" {
		path = "/events"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Feed{
		key:     key,
		BaseURL: baseURL,
		Path:    path,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (f *Feed) Key() string { return f.key }

func (f *Feed) Fetch(ctx context.Context, max int, opts Options) ([]models.RawEvent, error) {
	u, err := url.Parse(f.BaseURL + f.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: parse url: %w", f.key, err)
	}
	q := u.Query()
	q.Set("max", strconv.Itoa(max))
	q.Set("headless", strconv.FormatBool(opts.Headless))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", f.key, err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: do request: %w", f.key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s: status %d: %s", f.key, resp.StatusCode, string(body))
	}

	var raw []models.RawEvent
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: decode json: %w", f.key, err)
	}

	if max > 0 && len(raw) > max {
		raw = raw[:max]
	}
	return raw, nil
}
