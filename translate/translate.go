// Package translate provides the remote title-translation client.
//
// The endpoint is a RapidAPI-style POST with a JSON body
// {"sl": source, "tl": target, "text": ...}. The provider has been
// observed answering in three shapes: {"response": "..."},
// {"translation": "..."}, and the standard Google format
// {"data": {"translations": [{"translatedText": "..."}]}}; all three
// are accepted.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Prefixes marking degraded results. Translate never fails outright:
// callers filter on these to exclude degraded titles from analysis.
const (
	NoKeyPrefix  = "[NO API KEY] "
	FailedPrefix = "[TRANSLATION FAILED] "
)

// Config configures the client. APIKey and Host come from the
// environment, never from config files.
type Config struct {
	Endpoint string
	APIKey   string
	Host     string
	// Source and Target language codes. Defaults: "es" -> "en".
	Source string
	Target string
	// Timeout bounds one translation call. Default: 15s.
	Timeout time.Duration
}

func (c *Config) defaults() {
	if c.Endpoint == "" {
		c.Endpoint = "https://top-google-translate.p.rapidapi.com/v3/translate"
	}
	if c.Source == "" {
		c.Source = "es"
	}
	if c.Target == "" {
		c.Target = "en"
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
}

// Client calls the translation endpoint.
type Client struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

// New creates a Client.
func New(cfg Config, logger *slog.Logger) *Client {
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type request struct {
	SL   string `json:"sl"`
	TL   string `json:"tl"`
	Text string `json:"text"`
}

type response struct {
	Response    string `json:"response"`
	Translation string `json:"translation"`
	Data        struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

// Translate returns the translated text. It never returns an error:
// a missing key, transport failure, rate limit, or unrecognized response
// all degrade to a prefixed copy of the input so the batch can continue.
func (c *Client) Translate(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	if c.cfg.APIKey == "" {
		c.logger.Warn("translate: API key not set")
		return NoKeyPrefix + text
	}

	body, err := json.Marshal(request{SL: c.cfg.Source, TL: c.cfg.Target, Text: text})
	if err != nil {
		c.logger.Error("translate: marshal request", "error", err)
		return FailedPrefix + text
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("translate: build request", "error", err)
		return FailedPrefix + text
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", c.cfg.Host)

	c.logger.Info("translate: translating", "text", text)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("translate: request failed", "error", err)
		return FailedPrefix + text
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		c.logger.Error("translate: read response", "error", err)
		return FailedPrefix + text
	}

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == 221:
		return c.parse(raw, text)
	case resp.StatusCode == http.StatusTooManyRequests:
		c.logger.Warn("translate: rate limited, backing off")
		select {
		case <-time.After(2 * time.Second):
		case <-ctx.Done():
		}
		return FailedPrefix + text
	default:
		c.logger.Error("translate: API error",
			"status", resp.StatusCode, "body", string(raw))
		return FailedPrefix + text
	}
}

func (c *Client) parse(raw []byte, original string) string {
	var r response
	if err := json.Unmarshal(raw, &r); err != nil {
		c.logger.Error("translate: parse response", "error", err)
		return FailedPrefix + original
	}

	if t := strings.TrimSpace(r.Response); t != "" {
		c.logger.Info("translate: done", "from", original, "to", t)
		return t
	}
	if len(r.Data.Translations) > 0 {
		if t := strings.TrimSpace(r.Data.Translations[0].TranslatedText); t != "" {
			return t
		}
	}
	if t := strings.TrimSpace(r.Translation); t != "" {
		return t
	}

	c.logger.Warn("translate: unknown response structure", "body", string(raw))
	return FailedPrefix + original
}

// Degraded reports whether a translation result carries one of the
// failure prefixes.
func Degraded(s string) bool {
	return strings.HasPrefix(s, NoKeyPrefix) || strings.HasPrefix(s, FailedPrefix)
}
