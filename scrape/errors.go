package scrape

import "errors"

// ErrNoArticles is returned by Run when URL collection yields nothing with
// both the primary and fallback locator sets. It is the only condition
// surfaced as a batch-level failure; everything else degrades and continues.
var ErrNoArticles = errors.New("prensa: no article URLs collected")
