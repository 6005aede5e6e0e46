package htmldoc

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/hazyhaar/prensa/scrape"
)

const fixture = `<!DOCTYPE html>
<html lang="es">
<head>
  <title>Portada | Noticias</title>
  <meta property="og:description" content="Resumen de portada">
</head>
<body>
  <nav><a href="/opinion/">Opinión</a></nav>
  <section>
    <article class="story featured">
      <h2 class="headline"><a href="https://noticias.example/a1">Primer titular</a></h2>
      <p>Primer resumen.</p>
    </article>
    <article class="story">
      <h2><a href="https://noticias.example/a2">Segundo titular</a></h2>
    </article>
  </section>
  <div id="extra"><a href="#comments">Comentarios</a></div>
  <script>var tracking = true;</script>
</body>
</html>`

func parseFixture(t *testing.T) *Doc {
	t.Helper()
	d, err := Parse("https://noticias.example/", fixture)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return d
}

func elementTexts(t *testing.T, d *Doc, sel string) []string {
	t.Helper()
	els, err := d.Elements(sel)
	if err != nil {
		t.Fatalf("elements %q: %v", sel, err)
	}
	var out []string
	for _, el := range els {
		out = append(out, el.Text())
	}
	return out
}

func TestSelectorMatching(t *testing.T) {
	// WHAT: Exercise each selector form the extraction configs use.
	// WHY: The engine only has to cover this subset, but it has to cover
	// all of it, or a config edit silently matches nothing.
	d := parseFixture(t)
	cases := []struct {
		sel  string
		want int
	}{
		{"article", 2},
		{".story", 2},
		{".featured", 1},
		{"article.featured", 1},
		{"#extra", 1},
		{"h2.headline", 1},
		{"article h2 a", 2},
		{"a[href]", 4},
		{"a[href='https://noticias.example/a1']", 1},
		{"a[href*='noticias.example']", 2},
		{"a[href^='#']", 1},
		{"a[href$='/a2']", 1},
		{"meta[property='og:description']", 1},
		{"section p", 1},
		{"h1", 0},
	}
	for _, tc := range cases {
		els, err := d.Elements(tc.sel)
		if err != nil {
			t.Errorf("Elements(%q): %v", tc.sel, err)
			continue
		}
		if len(els) != tc.want {
			t.Errorf("Elements(%q) = %d matches, want %d", tc.sel, len(els), tc.want)
		}
	}
}

func TestCommaListKeepsDocumentOrder(t *testing.T) {
	// WHAT: A comma list whose alternatives interleave in the markup.
	// WHY: URL collection depends on document order across alternatives,
	// not per-selector grouping.
	d := parseFixture(t)
	els, err := d.Elements("h2 a, #extra a")
	if err != nil {
		t.Fatalf("elements: %v", err)
	}
	var hrefs []string
	for _, el := range els {
		h, _ := el.Attribute("href")
		hrefs = append(hrefs, h)
	}
	want := []string{
		"https://noticias.example/a1",
		"https://noticias.example/a2",
		"#comments",
	}
	if len(hrefs) != len(want) {
		t.Fatalf("got %v, want %v", hrefs, want)
	}
	for i := range want {
		if hrefs[i] != want[i] {
			t.Errorf("href[%d] = %q, want %q", i, hrefs[i], want[i])
		}
	}
}

func TestElementTextSkipsScripts(t *testing.T) {
	// WHAT: Read visible text of an article containing a nested structure.
	// WHY: Script bodies inside a container would poison extracted content.
	d := parseFixture(t)
	texts := elementTexts(t, d, "article.featured")
	if len(texts) != 1 {
		t.Fatalf("got %d elements, want 1", len(texts))
	}
	if texts[0] != "Primer titular Primer resumen." {
		t.Errorf("text = %q", texts[0])
	}

	body := elementTexts(t, d, "body")
	if len(body) != 1 {
		t.Fatalf("got %d body elements", len(body))
	}
	for _, forbidden := range []string{"tracking", "var"} {
		if slices.Contains(strings.Fields(body[0]), forbidden) {
			t.Errorf("body text contains script content %q: %q", forbidden, body[0])
		}
	}
}

func TestTitleAndCurrentURL(t *testing.T) {
	// WHAT: Page title and URL after Parse.
	// WHY: Title extraction falls back to the page <title>; it must be
	// available without any rendering.
	d := parseFixture(t)
	if d.Title() != "Portada | Noticias" {
		t.Errorf("title = %q", d.Title())
	}
	if d.CurrentURL() != "https://noticias.example/" {
		t.Errorf("url = %q", d.CurrentURL())
	}
}

func TestWaitPresentIsImmediate(t *testing.T) {
	// WHAT: WaitPresent on present and absent selectors.
	// WHY: A static tree never changes; waiting must resolve immediately
	// and report absence as a timeout.
	d := parseFixture(t)
	ctx := context.Background()
	if err := d.WaitPresent(ctx, "article", time.Second); err != nil {
		t.Errorf("present selector: %v", err)
	}
	if err := d.WaitPresent(ctx, "h1", time.Second); !errors.Is(err, scrape.ErrWaitTimeout) {
		t.Errorf("absent selector: got %v, want ErrWaitTimeout", err)
	}
}

func TestNavigateWithStaticFetcher(t *testing.T) {
	// WHAT: Navigate between two in-memory pages.
	// WHY: Navigate replaces the whole tree; stale state from the previous
	// page must be gone.
	fetcher := StaticFetcher{
		"https://noticias.example/":   fixture,
		"https://noticias.example/a1": `<html><head><title>Artículo</title></head><body><h1>Titular</h1></body></html>`,
	}
	d := New(fetcher)
	ctx := context.Background()

	if err := d.Navigate(ctx, "https://noticias.example/"); err != nil {
		t.Fatalf("navigate home: %v", err)
	}
	if els, _ := d.Elements("article"); len(els) != 2 {
		t.Fatalf("home articles = %d, want 2", len(els))
	}

	if err := d.Navigate(ctx, "https://noticias.example/a1"); err != nil {
		t.Fatalf("navigate article: %v", err)
	}
	if els, _ := d.Elements("article"); len(els) != 0 {
		t.Errorf("stale articles after navigation")
	}
	if els, _ := d.Elements("h1"); len(els) != 1 {
		t.Errorf("h1 not found after navigation")
	}
	if d.Title() != "Artículo" {
		t.Errorf("title = %q", d.Title())
	}

	if err := d.Navigate(ctx, "https://noticias.example/missing"); err == nil {
		t.Errorf("missing page: want error")
	}
}

func TestElementHTML(t *testing.T) {
	// WHAT: Render one element back to markup.
	// WHY: The structured-data strategy scans raw script markup, and
	// markdown archival renders the body container.
	d := parseFixture(t)
	els, err := d.Elements("h2.headline")
	if err != nil || len(els) != 1 {
		t.Fatalf("elements: %v (%d)", err, len(els))
	}
	h := els[0].HTML()
	if h == "" {
		t.Fatalf("empty html")
	}
	if want := `<a href="https://noticias.example/a1">`; !strings.Contains(h, want) {
		t.Errorf("html %q missing %q", h, want)
	}
}
