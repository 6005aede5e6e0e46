// Package download fetches article cover images to local files.
package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Config configures the downloader.
type Config struct {
	// Dir is the directory images are written to.
	Dir string

	// Timeout bounds one download. Default: 30s.
	Timeout time.Duration

	// MaxBytes caps one image download. Default: 20MB.
	MaxBytes int64

	// UserAgent sent with image requests. Some CDNs reject blank agents.
	UserAgent string

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = 20 << 20
	}
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0 (X11; Linux x86_64) prensa/1.0"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Downloader fetches cover images.
type Downloader struct {
	cfg    Config
	client *http.Client
}

// New creates a Downloader writing into cfg.Dir.
func New(cfg Config) *Downloader {
	cfg.defaults()
	return &Downloader{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// CoverImage downloads imageURL to article_<index>_cover.<ext> and
// returns the local path. Unusable URLs (blank, data:, SVG) are skipped
// with a warning and return ("", nil): a missing image never fails the
// article.
func (d *Downloader) CoverImage(ctx context.Context, imageURL string, index int) (string, error) {
	imageURL = strings.TrimSpace(imageURL)
	switch {
	case imageURL == "":
		return "", nil
	case strings.HasPrefix(imageURL, "data:"):
		d.cfg.Logger.Warn("download: skipping data URI", "article", index)
		return "", nil
	case strings.HasSuffix(strings.ToLower(imageURL), ".svg"):
		d.cfg.Logger.Warn("download: skipping svg", "article", index, "url", imageURL)
		return "", nil
	}

	// Protocol-relative URLs come straight out of srcset attributes.
	if strings.HasPrefix(imageURL, "//") {
		imageURL = "https:" + imageURL
	}

	if err := os.MkdirAll(d.cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("download: create %s: %w", d.cfg.Dir, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("download: build request: %w", err)
	}
	req.Header.Set("User-Agent", d.cfg.UserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: fetch %s: %w", imageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: fetch %s: status %d", imageURL, resp.StatusCode)
	}

	name := fmt.Sprintf("article_%d_cover%s", index, extension(imageURL))
	dst := filepath.Join(d.cfg.Dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("download: create %s: %w", dst, err)
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(resp.Body, d.cfg.MaxBytes))
	if err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("download: write %s: %w", dst, err)
	}

	d.cfg.Logger.Info("download: saved cover image",
		"article", index, "path", dst, "bytes", n)
	return dst, nil
}

// extension picks a file extension from the URL path, defaulting to .jpg
// when the path carries none of the known image extensions.
func extension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".jpg"
	}
	ext := strings.ToLower(path.Ext(u.Path))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	}
	return ".jpg"
}
