package htmldoc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FetchConfig configures the HTTP fetcher.
type FetchConfig struct {
	// Timeout bounds the whole request. Default: 30s.
	Timeout time.Duration
	// MaxBytes caps the response body. Default: 10MB.
	MaxBytes int64
	// UserAgent sent with requests.
	UserAgent string
	// AcceptLanguage keeps localized sites in the expected language.
	AcceptLanguage string
}

func (c *FetchConfig) defaults() {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = 10 * 1024 * 1024
	}
	if c.UserAgent == "" {
		c.UserAgent = "prensa/1.0"
	}
}

// HTTPFetcher retrieves pages over plain HTTP with a bounded redirect
// chain and body size.
type HTTPFetcher struct {
	client *http.Client
	config FetchConfig
}

// NewHTTPFetcher creates an HTTPFetcher.
func NewHTTPFetcher(cfg FetchConfig) *HTTPFetcher {
	cfg.defaults()
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("too many redirects (%d)", len(via))
				}
				return nil
			},
		},
		config: cfg,
	}
}

// Fetch retrieves a URL and returns its body.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: new request: %w", err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	if f.config.AcceptLanguage != "" {
		req.Header.Set("Accept-Language", f.config.AcceptLanguage)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("htmldoc: fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBytes))
	if err != nil {
		return nil, fmt.Errorf("htmldoc: read body: %w", err)
	}
	return body, nil
}

// StaticFetcher serves pages from memory, keyed by URL. Pages that are
// not present return an error, like a navigation failure would.
type StaticFetcher map[string]string

// Fetch returns the stored markup for url.
func (s StaticFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	src, ok := s[url]
	if !ok {
		return nil, fmt.Errorf("htmldoc: no page for %s", url)
	}
	return []byte(src), nil
}
