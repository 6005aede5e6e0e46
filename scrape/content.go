package scrape

import (
	"strings"
	"unicode/utf8"
)

// ExtractContent returns the article body text. Four strategies run in
// order, each only when the previous produced nothing acceptable:
//
//  1. main body container, visible text, length > BodyMinLen
//  2. aggregated paragraphs longer than ParagraphMinLen, blank-line
//     separated, aggregate length > BodyMinLen
//  3. og:description / description meta, length > MetaMinLen, prefixed
//     with the preview marker
//  4. JSON-LD description field, length > MetaMinLen, prefixed with the
//     paywall marker
//
// A strategy error is logged and treated as that strategy failing. If all
// four fail, a fixed unavailable sentinel is returned. Never fails.
func (s *Scraper) ExtractContent() string {
	text, _ := s.extractContent()
	return text
}

// extractContent also returns the body container HTML when strategy 1
// matched, for markdown archival.
func (s *Scraper) extractContent() (text, bodyHTML string) {
	if t, h, ok := s.contentFromBody(); ok {
		return t, h
	}
	if t, ok := s.contentFromParagraphs(); ok {
		return t, ""
	}
	if t, ok := s.contentFromMeta(); ok {
		return t, ""
	}
	if t, ok := s.contentFromStructuredData(); ok {
		return t, ""
	}
	s.logger.Warn("content: all extraction strategies failed, paywall assumed")
	return ContentUnavailable, ""
}

// contentFromBody reads the main article-body container. Each candidate is
// scrolled into view first so lazy-loaded paragraphs render before the
// text is read.
func (s *Scraper) contentFromBody() (string, string, bool) {
	els, err := s.doc.Elements(s.cfg.Selectors.ArticleBody.Query())
	if err != nil {
		s.logger.Warn("content: body strategy failed", "error", err)
		return "", "", false
	}
	for _, el := range els {
		if err := el.ScrollIntoView(); err != nil {
			s.logger.Debug("content: scroll failed", "error", err)
		}
		text := strings.TrimSpace(el.Text())
		if utf8.RuneCountInString(text) > s.cfg.BodyMinLen {
			return text, el.HTML(), true
		}
	}
	return "", "", false
}

// contentFromParagraphs aggregates paragraphs under article/body
// containers. Short paragraphs are skipped: they are nav labels, bylines,
// and captions, not body text.
func (s *Scraper) contentFromParagraphs() (string, bool) {
	els, err := s.doc.Elements(s.cfg.Selectors.Paragraphs.Query())
	if err != nil {
		s.logger.Warn("content: paragraph strategy failed", "error", err)
		return "", false
	}
	var sb strings.Builder
	for _, p := range els {
		text := strings.TrimSpace(p.Text())
		if utf8.RuneCountInString(text) > s.cfg.ParagraphMinLen {
			sb.WriteString(text)
			sb.WriteString("\n\n")
		}
	}
	if utf8.RuneCountInString(sb.String()) > s.cfg.BodyMinLen {
		return strings.TrimSpace(sb.String()), true
	}
	return "", false
}

// contentFromMeta reads the description metas, og:description first since
// it is richer. Meta descriptions survive paywalls, so an accepted result
// is marked as a preview.
func (s *Scraper) contentFromMeta() (string, bool) {
	for _, sel := range s.cfg.Selectors.MetaDescription {
		els, err := s.doc.Elements(sel)
		if err != nil || len(els) == 0 {
			continue
		}
		desc, _ := els[0].Attribute("content")
		desc = strings.TrimSpace(desc)
		if utf8.RuneCountInString(desc) > s.cfg.MetaMinLen {
			s.logger.Info("content: using meta description fallback", "selector", sel)
			return PreviewPrefix + desc, true
		}
	}
	return "", false
}

// contentFromStructuredData scans embedded JSON-LD blocks for a
// description field. Substring search, deliberately not a JSON parse:
// only this one field is needed, and strict parsing would reject payloads
// the looser match accepts.
func (s *Scraper) contentFromStructuredData() (string, bool) {
	els, err := s.doc.Elements(s.cfg.Selectors.StructuredData.Query())
	if err != nil {
		s.logger.Warn("content: structured-data strategy failed", "error", err)
		return "", false
	}
	const marker = `"description":"`
	for _, el := range els {
		raw := el.HTML()
		idx := strings.Index(raw, marker)
		if idx < 0 {
			continue
		}
		rest := raw[idx+len(marker):]
		end := strings.IndexByte(rest, '"')
		if end < 0 {
			continue
		}
		if desc := rest[:end]; utf8.RuneCountInString(desc) > s.cfg.MetaMinLen {
			s.logger.Info("content: using structured-data description fallback")
			return PaywallPrefix + desc, true
		}
	}
	return "", false
}
