package scrape

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SelectorSet is an ordered list of CSS selectors for one extraction step,
// most specific first.
type SelectorSet []string

// Query joins the set into a single comma list so backends match all
// alternatives in document order.
func (s SelectorSet) Query() string { return strings.Join(s, ", ") }

// Selectors is the declarative selector table keyed by extraction step.
// When a site's markup changes, this table is edited; the extraction
// algorithms are not.
type Selectors struct {
	// ListingLinks locate article headline anchors on the listing page.
	ListingLinks SelectorSet `yaml:"listing_links"`
	// ListingFallback is the broader set used when ListingLinks times out.
	ListingFallback SelectorSet `yaml:"listing_fallback"`
	// SectionNav locates the listing-section link on the front page.
	SectionNav SelectorSet `yaml:"section_nav"`
	// CookieConsent locates dismissable consent overlays. Each selector is
	// tried independently, most specific first.
	CookieConsent SelectorSet `yaml:"cookie_consent"`
	// ArticleTitle locates the headline on a detail page.
	ArticleTitle SelectorSet `yaml:"article_title"`
	// ArticleBody locates the main article-body container.
	ArticleBody SelectorSet `yaml:"article_body"`
	// Paragraphs locates body paragraphs for the aggregation strategy.
	Paragraphs SelectorSet `yaml:"paragraphs"`
	// MetaDescription meta tags, tried in order (og:description first).
	MetaDescription SelectorSet `yaml:"meta_description"`
	// StructuredData locates embedded JSON-LD script blocks.
	StructuredData SelectorSet `yaml:"structured_data"`
	// CoverImages locate hero/lead/cover image elements.
	CoverImages SelectorSet `yaml:"cover_images"`
	// MetaImages meta tags, tried in order (og:image first).
	MetaImages SelectorSet `yaml:"meta_images"`
}

// Config carries everything the Scraper needs as plain data: site
// addressing, selector sets, wait budget, and acceptance thresholds.
type Config struct {
	// BaseURL is the site front page, e.g. "https://elpais.com".
	BaseURL string `yaml:"base_url"`
	// SectionPath is appended to BaseURL to reach the listing page.
	SectionPath string `yaml:"section_path"`
	// DomainMarker must appear in every collected article URL.
	DomainMarker string `yaml:"domain_marker"`
	// Language is the expected html lang prefix, e.g. "es".
	Language string `yaml:"language"`
	// ArticleCount caps the number of articles per batch. Default: 5.
	ArticleCount int `yaml:"article_count"`
	// WaitBudget bounds every DOM wait. Default: 20s.
	WaitBudget time.Duration `yaml:"wait_budget"`

	// BodyMinLen is the acceptance threshold for body/aggregate text,
	// counted in characters, not bytes. Default: 100.
	BodyMinLen int `yaml:"body_min_len"`
	// ParagraphMinLen filters out short nav/label paragraphs (characters).
	// Default: 40.
	ParagraphMinLen int `yaml:"paragraph_min_len"`
	// MetaMinLen is the acceptance threshold for meta/JSON-LD text
	// (characters). Default: 30.
	MetaMinLen int `yaml:"meta_min_len"`

	// ImageExtensions are photo-like extension markers (substring match).
	ImageExtensions []string `yaml:"image_extensions"`
	// ImageKeywords are CDN path markers that identify photo URLs lacking
	// an extension.
	ImageKeywords []string `yaml:"image_keywords"`

	Selectors Selectors `yaml:"selectors"`
}

func (c *Config) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://elpais.com"
	}
	if c.SectionPath == "" {
		c.SectionPath = "/opinion/"
	}
	if c.DomainMarker == "" {
		c.DomainMarker = "elpais.com"
	}
	if c.Language == "" {
		c.Language = "es"
	}
	if c.ArticleCount <= 0 {
		c.ArticleCount = 5
	}
	if c.WaitBudget <= 0 {
		c.WaitBudget = 20 * time.Second
	}
	if c.BodyMinLen <= 0 {
		c.BodyMinLen = 100
	}
	if c.ParagraphMinLen <= 0 {
		c.ParagraphMinLen = 40
	}
	if c.MetaMinLen <= 0 {
		c.MetaMinLen = 30
	}
	if len(c.ImageExtensions) == 0 {
		c.ImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}
	}
	if len(c.ImageKeywords) == 0 {
		c.ImageKeywords = []string{"image", "foto", "media"}
	}

	s := &c.Selectors
	if len(s.ListingLinks) == 0 {
		s.ListingLinks = SelectorSet{
			"section article h2 a",
			".opinion article h2 a",
			"article.opinion-article h2 a",
			"h2.article-title a",
		}
	}
	if len(s.ListingFallback) == 0 {
		s.ListingFallback = SelectorSet{
			"article a[href]",
			"h2 a[href]",
			"h3 a[href]",
		}
	}
	if len(s.SectionNav) == 0 {
		s.SectionNav = SelectorSet{"nav a[href*='/opinion']", "a[href*='/opinion']"}
	}
	if len(s.CookieConsent) == 0 {
		s.CookieConsent = SelectorSet{
			"#didomi-notice-agree-button",
			"button[id*='accept']",
			"button[class*='accept']",
		}
	}
	if len(s.ArticleTitle) == 0 {
		s.ArticleTitle = SelectorSet{
			"h1.article-title",
			"h1[class*='title']",
			"header h1",
			"h1",
		}
	}
	if len(s.ArticleBody) == 0 {
		s.ArticleBody = SelectorSet{
			"[data-dtm-region='articulo_cuerpo']",
			".article-body",
			"[class*='article-body']",
			"[class*='article_body']",
			"[itemprop='articleBody']",
		}
	}
	if len(s.Paragraphs) == 0 {
		s.Paragraphs = SelectorSet{
			"article p",
			".article-text p",
			"[class*='body'] p",
			".story-body p",
		}
	}
	if len(s.MetaDescription) == 0 {
		s.MetaDescription = SelectorSet{
			"meta[property='og:description']",
			"meta[name='description']",
		}
	}
	if len(s.StructuredData) == 0 {
		s.StructuredData = SelectorSet{"script[type='application/ld+json']"}
	}
	if len(s.CoverImages) == 0 {
		s.CoverImages = SelectorSet{
			"figure img",
			".article-cover img",
			"[class*='cover'] img",
			"[class*='lead'] img",
			"[class*='hero'] img",
			"header picture img",
			"[class*='main-image'] img",
			"[class*='featured'] img",
		}
	}
	if len(s.MetaImages) == 0 {
		s.MetaImages = SelectorSet{
			"meta[property='og:image']",
			"meta[name='twitter:image']",
		}
	}
}

// DefaultConfig returns the configuration for the El País Opinion section.
func DefaultConfig() Config {
	var c Config
	c.defaults()
	return c
}

// LoadConfigFile reads a YAML configuration file. Unset fields fall back
// to defaults.
func LoadConfigFile(path string) (Config, error) {
	var c Config
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("scrape: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("scrape: parse config: %w", err)
	}
	c.defaults()
	return c, nil
}

// Content sentinels. These are part of the output contract: downstream
// consumers match on the prefixes to distinguish degraded previews from
// full article text.
const (
	// TitleNotFound is returned when every title strategy comes up blank.
	TitleNotFound = "Title Not Found"
	// PreviewPrefix marks content recovered from meta descriptions.
	PreviewPrefix = "[Article Preview — Full content behind paywall]\n\n"
	// PaywallPrefix marks content recovered from structured data.
	PaywallPrefix = "[Article Preview — Paywall]\n\n"
	// ContentUnavailable is the terminal fallback when all strategies fail.
	ContentUnavailable = "[Content not available — article is behind paywall]"
)
