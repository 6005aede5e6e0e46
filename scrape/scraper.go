// Package scrape extracts structured articles (title, body text, cover
// image, canonical URL) from a news site through the Document capability.
//
// No single selector works reliably across articles: markup is
// inconsistent, paywall-gated, and lazy-loaded. Each extraction step is
// therefore a cascade of increasingly degraded strategies, and the first
// acceptable result wins. One article's failure never aborts the batch.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Scraper drives one extraction batch over a single Document session.
// It owns the session's navigation state for the duration of the batch:
// create one Scraper per session and never share it across goroutines.
// Parallelism lives above this type, one independent session per worker.
type Scraper struct {
	doc    Document
	cfg    Config
	logger *slog.Logger
}

// New creates a Scraper bound to one Document session.
func New(doc Document, cfg Config, logger *slog.Logger) *Scraper {
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Scraper{doc: doc, cfg: cfg, logger: logger}
}

// OpenHome navigates to the site front page and clears consent overlays.
func (s *Scraper) OpenHome(ctx context.Context) error {
	s.logger.Info("scrape: opening home", "url", s.cfg.BaseURL)
	if err := s.doc.Navigate(ctx, s.cfg.BaseURL); err != nil {
		return fmt.Errorf("scrape: open home: %w", err)
	}
	s.DismissOverlays()
	return nil
}

// VerifyLanguage checks the html lang attribute against the expected
// language prefix.
func (s *Scraper) VerifyLanguage() bool {
	els, err := s.doc.Elements("html")
	if err != nil || len(els) == 0 {
		s.logger.Warn("scrape: cannot read html element for language check")
		return false
	}
	lang, _ := els[0].Attribute("lang")
	match := strings.HasPrefix(strings.ToLower(lang), strings.ToLower(s.cfg.Language))
	s.logger.Info("scrape: language check",
		"lang", lang, "expected", s.cfg.Language, "match", match)
	return match
}

// OpenSection navigates to the listing page. The nav link is tried first;
// direct navigation is the fallback since mobile layouts hide desktop nav.
func (s *Scraper) OpenSection(ctx context.Context) error {
	els, err := s.doc.Elements(s.cfg.Selectors.SectionNav.Query())
	if err == nil && len(els) > 0 {
		if err := els[0].Click(); err == nil {
			s.logger.Info("scrape: section opened via nav", "url", s.doc.CurrentURL())
			return nil
		}
		s.logger.Warn("scrape: nav link click failed, navigating directly")
	}
	sectionURL := s.cfg.BaseURL + s.cfg.SectionPath
	if err := s.doc.Navigate(ctx, sectionURL); err != nil {
		return fmt.Errorf("scrape: open section: %w", err)
	}
	s.logger.Info("scrape: section opened", "url", s.doc.CurrentURL())
	return nil
}

// DismissOverlays clicks consent/overlay buttons if present. Absence of an
// overlay is the common case and is not treated as a problem.
func (s *Scraper) DismissOverlays() {
	for _, sel := range s.cfg.Selectors.CookieConsent {
		els, err := s.doc.Elements(sel)
		if err != nil || len(els) == 0 {
			continue
		}
		if err := els[0].Click(); err != nil {
			s.logger.Debug("scrape: overlay not clickable", "selector", sel, "error", err)
			continue
		}
		s.logger.Info("scrape: overlay dismissed", "selector", sel)
	}
}

// Run executes one batch: collect listing URLs once, then navigate to each
// article and extract title, content, and cover image. A failed article is
// logged with its index and dropped; the batch continues. The result list
// size is therefore independent of the requested count. The only batch-level
// failure is an empty URL collection (ErrNoArticles).
func (s *Scraper) Run(ctx context.Context) ([]Article, error) {
	count := s.cfg.ArticleCount
	listingURL := s.doc.CurrentURL()
	s.logger.Info("scrape: starting batch", "count", count, "listing", listingURL)

	urls := s.CollectURLs(ctx, count)
	if len(urls) == 0 {
		s.logger.Error("scrape: no article URLs found, check listing selectors")
		return nil, ErrNoArticles
	}
	s.logger.Info("scrape: collected article urls", "found", len(urls))

	articles := make([]Article, 0, len(urls))
	for i, u := range urls {
		article := Article{Index: i + 1, SourceURL: u}
		if err := s.scrapeDetail(ctx, &article); err != nil {
			s.logger.Error("scrape: article failed",
				"index", article.Index, "url", u, "error", err)
		} else {
			articles = append(articles, article)
			s.logger.Info("scrape: article done",
				"index", article.Index, "title", article.TitleOriginal)
		}

		// Return to the listing between articles so overlay handling and
		// any listing-relative waits see a consistent page.
		if i < len(urls)-1 {
			if err := s.doc.Navigate(ctx, listingURL); err != nil {
				s.logger.Warn("scrape: return to listing failed", "error", err)
			}
		}
	}

	s.logger.Info("scrape: batch complete",
		"requested", count, "scraped", len(articles))
	return articles, nil
}

// scrapeDetail populates one Article from its detail page. The title is
// read first: failure recovery in later steps assumes the detail page is
// still the loaded document.
func (s *Scraper) scrapeDetail(ctx context.Context, a *Article) error {
	if err := s.doc.Navigate(ctx, a.SourceURL); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}
	s.DismissOverlays()

	a.TitleOriginal = s.ExtractTitle(ctx)
	a.BodyText, a.BodyHTML = s.extractContent()
	a.CoverImageURL = s.ResolveCoverImage()
	return nil
}
