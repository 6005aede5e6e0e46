package scrape

import (
	"context"
	"testing"
)

func TestExtractTitleFromHeading(t *testing.T) {
	// WHAT: The detail page has a headline element.
	// WHY: The heading is the primary source and must win over <title>.
	cfg := testConfig()
	doc := newFakeDoc()
	doc.addPage("https://noticias.example/a1", &fakePage{
		title: "Otra cosa | Noticias",
		els: map[string][]Element{
			"h1": {&fakeElement{text: "  La reforma pendiente  "}},
		},
	})
	doc.Navigate(context.Background(), "https://noticias.example/a1")
	s := New(doc, cfg, nil)

	if got := s.ExtractTitle(context.Background()); got != "La reforma pendiente" {
		t.Errorf("got %q, want trimmed heading", got)
	}
}

func TestExtractTitleFallsBackToPageTitle(t *testing.T) {
	// WHAT: No headline element; the page <title> is "Headline | Site".
	// WHY: The fallback must strip the site-name suffix.
	cfg := testConfig()
	doc := newFakeDoc()
	doc.addPage("https://noticias.example/a1", &fakePage{
		title: "La reforma pendiente | Noticias del Día",
	})
	doc.Navigate(context.Background(), "https://noticias.example/a1")
	s := New(doc, cfg, nil)

	if got := s.ExtractTitle(context.Background()); got != "La reforma pendiente" {
		t.Errorf("got %q, want page title before separator", got)
	}
}

func TestExtractTitleSentinel(t *testing.T) {
	// WHAT: No headline and a blank page title.
	// WHY: Title extraction never fails; the sentinel is the contract.
	cfg := testConfig()
	doc := newFakeDoc()
	doc.addPage("https://noticias.example/a1", &fakePage{})
	doc.Navigate(context.Background(), "https://noticias.example/a1")
	s := New(doc, cfg, nil)

	if got := s.ExtractTitle(context.Background()); got != TitleNotFound {
		t.Errorf("got %q, want %q", got, TitleNotFound)
	}
}

func TestExtractTitleBlankHeadingFallsThrough(t *testing.T) {
	// WHAT: The headline element exists but its text is whitespace.
	// WHY: A present-but-empty heading must not shadow the page title.
	cfg := testConfig()
	doc := newFakeDoc()
	doc.addPage("https://noticias.example/a1", &fakePage{
		title: "Titular de respaldo | Sitio",
		els: map[string][]Element{
			"h1": {&fakeElement{text: "   "}},
		},
	})
	doc.Navigate(context.Background(), "https://noticias.example/a1")
	s := New(doc, cfg, nil)

	if got := s.ExtractTitle(context.Background()); got != "Titular de respaldo" {
		t.Errorf("got %q, want fallback page title", got)
	}
}
