package scrape

import (
	"context"
	"strings"
)

// ExtractTitle returns the article headline. It never fails: a blank or
// missing heading falls through to the page <title>, and a blank page
// title falls through to a fixed sentinel.
func (s *Scraper) ExtractTitle(ctx context.Context) string {
	sel := s.cfg.Selectors.ArticleTitle.Query()
	if err := s.doc.WaitPresent(ctx, sel, s.cfg.WaitBudget); err != nil {
		s.logger.Warn("title: primary locator failed", "error", err)
	} else if els, err := s.doc.Elements(sel); err == nil && len(els) > 0 {
		if t := strings.TrimSpace(els[0].Text()); t != "" {
			return t
		}
	}

	// Page <title> is usually "Headline | Site Name".
	if t := strings.TrimSpace(strings.SplitN(s.doc.Title(), "|", 2)[0]); t != "" {
		return t
	}

	s.logger.Error("title: all extraction attempts failed")
	return TitleNotFound
}
