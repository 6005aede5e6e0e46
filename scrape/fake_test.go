package scrape

import (
	"context"
	"fmt"
	"time"
)

// fakeElement is a canned Element for tests.
type fakeElement struct {
	attrs    map[string]string
	text     string
	html     string
	clickErr error
	clicked  bool
}

func (e *fakeElement) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *fakeElement) Text() string { return e.text }
func (e *fakeElement) HTML() string { return e.html }

func (e *fakeElement) ScrollIntoView() error { return nil }

func (e *fakeElement) Click() error {
	if e.clickErr == nil {
		e.clicked = true
	}
	return e.clickErr
}

func link(href string) *fakeElement {
	return &fakeElement{attrs: map[string]string{"href": href}}
}

// fakePage is one canned page: a title plus elements keyed by the exact
// selector query string the code under test will ask for.
type fakePage struct {
	title string
	els   map[string][]Element
}

// fakeDoc implements Document over canned pages keyed by URL.
type fakeDoc struct {
	pages    map[string]*fakePage
	current  string
	navFails map[string]bool
}

func newFakeDoc() *fakeDoc {
	return &fakeDoc{
		pages:    make(map[string]*fakePage),
		navFails: make(map[string]bool),
	}
}

func (d *fakeDoc) addPage(url string, p *fakePage) {
	if p.els == nil {
		p.els = make(map[string][]Element)
	}
	d.pages[url] = p
}

func (d *fakeDoc) Navigate(ctx context.Context, url string) error {
	if d.navFails[url] {
		return fmt.Errorf("fake: navigate %s: connection reset", url)
	}
	if _, ok := d.pages[url]; !ok {
		return fmt.Errorf("fake: no page for %s", url)
	}
	d.current = url
	return nil
}

func (d *fakeDoc) Elements(selector string) ([]Element, error) {
	p, ok := d.pages[d.current]
	if !ok {
		return nil, fmt.Errorf("fake: no page loaded")
	}
	return p.els[selector], nil
}

func (d *fakeDoc) WaitPresent(ctx context.Context, selector string, budget time.Duration) error {
	els, err := d.Elements(selector)
	if err != nil {
		return err
	}
	if len(els) == 0 {
		return ErrWaitTimeout
	}
	return nil
}

func (d *fakeDoc) CurrentURL() string { return d.current }

func (d *fakeDoc) Title() string {
	if p, ok := d.pages[d.current]; ok {
		return p.title
	}
	return ""
}

// testConfig returns a Config with single-selector sets so fake pages can
// key elements by predictable query strings.
func testConfig() Config {
	c := Config{
		BaseURL:      "https://noticias.example",
		SectionPath:  "/opinion/",
		DomainMarker: "noticias.example",
		Language:     "es",
		ArticleCount: 5,
		WaitBudget:   time.Second,
	}
	c.Selectors = Selectors{
		ListingLinks:    SelectorSet{"article h2 a"},
		ListingFallback: SelectorSet{"a[href]"},
		SectionNav:      SelectorSet{"nav a"},
		CookieConsent:   SelectorSet{"#consent"},
		ArticleTitle:    SelectorSet{"h1"},
		ArticleBody:     SelectorSet{".body"},
		Paragraphs:      SelectorSet{"article p"},
		MetaDescription: SelectorSet{"meta[property='og:description']", "meta[name='description']"},
		StructuredData:  SelectorSet{"script[type='application/ld+json']"},
		CoverImages:     SelectorSet{"figure img"},
		MetaImages:      SelectorSet{"meta[property='og:image']"},
	}
	c.defaults()
	return c
}
