package scrape

import "strings"

// ResolveCoverImage returns the article's cover photo URL, or "" when no
// candidate resolves. An empty result is a normal, expected outcome, not
// an error: image bytes are fetched by an external downloader, this only
// decides which URL is the real photo.
func (s *Scraper) ResolveCoverImage() string {
	els, err := s.doc.Elements(s.cfg.Selectors.CoverImages.Query())
	if err != nil {
		s.logger.Warn("image: candidate query failed", "error", err)
	}
	for _, img := range els {
		src, _ := img.Attribute("src")
		dataSrc, _ := img.Attribute("data-src")
		srcset, _ := img.Attribute("srcset")

		if resolved := s.resolveCandidate(src, dataSrc, srcset); resolved != "" {
			s.logger.Info("image: cover found", "url", resolved)
			return resolved
		}
	}

	// og:image and twitter:image are set to the article photo, not the
	// site logo, which makes them a reliable fallback. SVG values are the
	// exception and are rejected.
	for _, sel := range s.cfg.Selectors.MetaImages {
		els, err := s.doc.Elements(sel)
		if err != nil || len(els) == 0 {
			continue
		}
		u, _ := els[0].Attribute("content")
		u = strings.TrimSpace(u)
		if u != "" && !strings.HasSuffix(u, ".svg") {
			s.logger.Info("image: using meta image", "selector", sel, "url", u)
			return u
		}
	}

	s.logger.Info("image: no cover image found")
	return ""
}

// resolveCandidate picks the real photo URL from one element's attributes.
// Priority: data-src (the lazy-loaded real image), then the first srcset
// entry, then src. The first value passing the validity predicate wins;
// failing candidates are skipped silently.
func (s *Scraper) resolveCandidate(src, dataSrc, srcset string) string {
	if s.cfg.ValidImageURL(dataSrc) {
		return strings.TrimSpace(dataSrc)
	}
	if strings.TrimSpace(srcset) != "" {
		first := strings.SplitN(srcset, ",", 2)[0]
		if fields := strings.Fields(first); len(fields) > 0 && s.cfg.ValidImageURL(fields[0]) {
			return fields[0]
		}
	}
	if s.cfg.ValidImageURL(src) {
		return strings.TrimSpace(src)
	}
	return ""
}

// ValidImageURL reports whether u points at a real photo. Rejected
// outright: blanks, base64 data URIs, SVG and GIF suffixes (logos, icons,
// animations), and anything without an absolute http(s) scheme. The URL
// must then carry a photo-like extension or a known CDN path keyword;
// extension alone misses CDN URLs that omit one.
func (c *Config) ValidImageURL(u string) bool {
	u = strings.TrimSpace(u)
	if u == "" {
		return false
	}
	if strings.HasPrefix(u, "data:") {
		return false
	}
	if strings.HasSuffix(u, ".svg") || strings.HasSuffix(u, ".gif") {
		return false
	}
	if !strings.HasPrefix(u, "http") {
		return false
	}

	lower := strings.ToLower(u)
	for _, ext := range c.ImageExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	for _, kw := range c.ImageKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
