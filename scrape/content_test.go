package scrape

import (
	"context"
	"strings"
	"testing"
)

func newDetailScraper(t *testing.T, els map[string][]Element) *Scraper {
	t.Helper()
	cfg := testConfig()
	doc := newFakeDoc()
	doc.addPage("https://noticias.example/a1", &fakePage{els: els})
	if err := doc.Navigate(context.Background(), "https://noticias.example/a1"); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	return New(doc, cfg, nil)
}

var longBody = strings.Repeat("La columna sostiene que la reforma es urgente. ", 5)

func TestContentBodyStrategyWins(t *testing.T) {
	// WHAT: A long body container is present alongside paragraphs and meta.
	// WHY: Strategy order matters. The richest source must win and later
	// strategies must not run, so no preview prefix appears.
	s := newDetailScraper(t, map[string][]Element{
		".body":     {&fakeElement{text: longBody, html: "<div>" + longBody + "</div>"}},
		"article p": {&fakeElement{text: longBody}},
		"meta[property='og:description']": {
			&fakeElement{attrs: map[string]string{"content": longBody}},
		},
	})

	got := s.ExtractContent()
	if got != strings.TrimSpace(longBody) {
		t.Errorf("got %q, want body text", got)
	}
	if strings.HasPrefix(got, PreviewPrefix) || strings.HasPrefix(got, PaywallPrefix) {
		t.Errorf("full body text must not carry a preview prefix")
	}
}

func TestContentShortBodyFallsToParagraphs(t *testing.T) {
	// WHAT: The body container is too short; paragraphs aggregate past the
	// threshold, with short paragraphs skipped.
	// WHY: Short container text is navigation chrome, not an article. The
	// paragraph strategy must also filter bylines and captions by length.
	para := strings.Repeat("Cada párrafo supera el umbral mínimo de longitud. ", 2)
	s := newDetailScraper(t, map[string][]Element{
		".body": {&fakeElement{text: "Portada"}},
		"article p": {
			&fakeElement{text: para},
			&fakeElement{text: "Foto: EFE"}, // short, skipped
			&fakeElement{text: para},
		},
	})

	got := s.ExtractContent()
	want := strings.TrimSpace(para) + "\n\n" + strings.TrimSpace(para)
	if got != want {
		t.Errorf("got %q, want aggregated paragraphs %q", got, want)
	}
	if strings.Contains(got, "Foto: EFE") {
		t.Errorf("short paragraph must be skipped")
	}
}

func TestContentMetaPreviewPrefix(t *testing.T) {
	// WHAT: Only a meta description is available.
	// WHY: Meta text survives paywalls but is a preview. The prefix is the
	// output contract marking it as degraded.
	desc := "Un análisis del pacto presupuestario y sus consecuencias."
	s := newDetailScraper(t, map[string][]Element{
		"meta[property='og:description']": {
			&fakeElement{attrs: map[string]string{"content": desc}},
		},
	})

	got := s.ExtractContent()
	if got != PreviewPrefix+desc {
		t.Errorf("got %q, want preview-prefixed description", got)
	}
}

func TestContentMetaOrderPrefersOpenGraph(t *testing.T) {
	// WHAT: Both og:description and name=description are present.
	// WHY: og:description is richer and must be consulted first.
	ogDesc := "Descripción de Open Graph con suficiente longitud aquí."
	s := newDetailScraper(t, map[string][]Element{
		"meta[property='og:description']": {
			&fakeElement{attrs: map[string]string{"content": ogDesc}},
		},
		"meta[name='description']": {
			&fakeElement{attrs: map[string]string{"content": "Descripción estándar, también con longitud de sobra."}},
		},
	})

	if got := s.ExtractContent(); got != PreviewPrefix+ogDesc {
		t.Errorf("got %q, want og:description", got)
	}
}

func TestContentStructuredDataPaywallPrefix(t *testing.T) {
	// WHAT: Only a JSON-LD block carries a description.
	// WHY: Last resort before the unavailable sentinel. The substring scan
	// must keep the description intact from its first character.
	raw := `<script type="application/ld+json">{"@type":"NewsArticle","description":"Editorial sobre la crisis institucional del momento.","author":"Redacción"}</script>`
	s := newDetailScraper(t, map[string][]Element{
		"script[type='application/ld+json']": {&fakeElement{html: raw}},
	})

	got := s.ExtractContent()
	want := PaywallPrefix + "Editorial sobre la crisis institucional del momento."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestContentAllStrategiesFail(t *testing.T) {
	// WHAT: No strategy produces acceptable text.
	// WHY: Extraction never fails. The terminal sentinel is the contract.
	s := newDetailScraper(t, map[string][]Element{})
	if got := s.ExtractContent(); got != ContentUnavailable {
		t.Errorf("got %q, want %q", got, ContentUnavailable)
	}
}

func TestContentThresholdsCountCharacters(t *testing.T) {
	// WHAT: Accented text whose byte length clears a gate its character
	// count does not.
	// WHY: Spanish is accent-heavy and the thresholds are character counts;
	// counting bytes would accept roughly half the intended minimum.
	short := strings.Repeat("á", 17) // 17 characters, 34 bytes
	s := newDetailScraper(t, map[string][]Element{
		"meta[property='og:description']": {
			&fakeElement{attrs: map[string]string{"content": short}},
		},
	})
	if got := s.ExtractContent(); got != ContentUnavailable {
		t.Errorf("got %q, want unavailable sentinel for %d-char description", got, 17)
	}

	long := strings.Repeat("á", 31) // above the 30-character gate
	s = newDetailScraper(t, map[string][]Element{
		"meta[property='og:description']": {
			&fakeElement{attrs: map[string]string{"content": long}},
		},
	})
	if got := s.ExtractContent(); got != PreviewPrefix+long {
		t.Errorf("got %q, want accepted 31-char description", got)
	}
}

func TestContentBodyThresholdCountsCharacters(t *testing.T) {
	// WHAT: A body container of 60 accented characters (120 bytes).
	// WHY: The body gate must reject it; byte counting would accept it.
	s := newDetailScraper(t, map[string][]Element{
		".body": {&fakeElement{text: strings.Repeat("é", 60)}},
	})
	if got := s.ExtractContent(); got != ContentUnavailable {
		t.Errorf("got %q, want unavailable sentinel for 60-char body", got)
	}
}

func TestContentExtractionIdempotent(t *testing.T) {
	// WHAT: Extract twice from the same page.
	// WHY: Extraction reads, never mutates. Both calls must agree.
	s := newDetailScraper(t, map[string][]Element{
		".body": {&fakeElement{text: longBody}},
	})
	first := s.ExtractContent()
	second := s.ExtractContent()
	if first != second {
		t.Errorf("extraction not idempotent: %q vs %q", first, second)
	}
}
