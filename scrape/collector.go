package scrape

import (
	"context"
	"strings"
)

// CollectURLs gathers up to count article URLs from the loaded listing
// page, in document order, deduplicated, domain-filtered. Collecting all
// URLs before navigating anywhere avoids referencing element handles that
// become invalid once the page is left and revisited.
//
// When the primary locators time out, the broader fallback set is tried
// with the same accept rule plus a fragment-URL exclusion. An empty result
// means both strategies failed; the caller treats that as a hard stop.
func (s *Scraper) CollectURLs(ctx context.Context, count int) []string {
	primary := s.cfg.Selectors.ListingLinks.Query()

	if err := s.doc.WaitPresent(ctx, primary, s.cfg.WaitBudget); err != nil {
		s.logger.Warn("collector: primary locators timed out, trying fallback", "error", err)
		return s.collectFallback(count)
	}

	els, err := s.doc.Elements(primary)
	if err != nil {
		s.logger.Warn("collector: primary query failed, trying fallback", "error", err)
		return s.collectFallback(count)
	}

	urls := make([]string, 0, count)
	seen := make(map[string]bool)
	for _, el := range els {
		if len(urls) >= count {
			break
		}
		href, _ := el.Attribute("href")
		if strings.TrimSpace(href) == "" || seen[href] {
			continue
		}
		if !strings.Contains(href, s.cfg.DomainMarker) {
			continue
		}
		seen[href] = true
		urls = append(urls, href)
		s.logger.Debug("collector: url accepted", "href", href)
	}
	return urls
}

// collectFallback retries collection with the broad locator set. Fragment
// URLs are excluded here: the broad selectors match in-page anchors that
// the specific ones never do.
func (s *Scraper) collectFallback(count int) []string {
	els, err := s.doc.Elements(s.cfg.Selectors.ListingFallback.Query())
	if err != nil {
		s.logger.Error("collector: fallback query failed", "error", err)
		return nil
	}

	urls := make([]string, 0, count)
	seen := make(map[string]bool)
	for _, el := range els {
		if len(urls) >= count {
			break
		}
		href, _ := el.Attribute("href")
		if href == "" || seen[href] {
			continue
		}
		if !strings.Contains(href, s.cfg.DomainMarker) || strings.Contains(href, "#") {
			continue
		}
		seen[href] = true
		urls = append(urls, href)
	}
	s.logger.Info("collector: fallback collected urls", "found", len(urls))
	return urls
}
