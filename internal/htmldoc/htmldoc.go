// Package htmldoc implements the scrape.Document capability over a parsed
// HTML tree fetched with plain HTTP. Nothing is rendered: visible text is
// approximated by concatenated text nodes and scrolling is a no-op. Use it
// when the target serves complete markup without JavaScript, and in tests.
package htmldoc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hazyhaar/prensa/scrape"
)

// Fetcher retrieves page markup for Navigate.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Doc is a navigable document over parsed HTML.
type Doc struct {
	fetch Fetcher
	url   string
	root  *html.Node
	title string
}

// New creates an empty Doc that loads pages through f on Navigate.
func New(f Fetcher) *Doc {
	return &Doc{fetch: f}
}

// Parse builds a Doc directly from markup, bypassing any fetcher. Entry
// point for fixtures and offline snapshots.
func Parse(pageURL, src string) (*Doc, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("htmldoc: parse: %w", err)
	}
	return &Doc{url: pageURL, root: root, title: findTitle(root)}, nil
}

// Navigate fetches and parses a page, replacing the current tree.
func (d *Doc) Navigate(ctx context.Context, pageURL string) error {
	if d.fetch == nil {
		return errors.New("htmldoc: no fetcher configured")
	}
	body, err := d.fetch.Fetch(ctx, pageURL)
	if err != nil {
		return fmt.Errorf("htmldoc: navigate %s: %w", pageURL, err)
	}
	root, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return fmt.Errorf("htmldoc: parse %s: %w", pageURL, err)
	}
	d.url = pageURL
	d.root = root
	d.title = findTitle(root)
	return nil
}

// Elements returns all nodes matching the CSS selector list, in document
// order across all comma-separated alternatives.
func (d *Doc) Elements(selector string) ([]scrape.Element, error) {
	if d.root == nil {
		return nil, errors.New("htmldoc: no page loaded")
	}
	chains, err := parseSelectorList(selector)
	if err != nil {
		return nil, err
	}
	var out []scrape.Element
	walk(d.root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		for _, c := range chains {
			if c.matches(n) {
				out = append(out, element{n: n})
				return
			}
		}
	})
	return out, nil
}

// WaitPresent is immediate for a static tree: either the selector matches
// now or it never will.
func (d *Doc) WaitPresent(ctx context.Context, selector string, budget time.Duration) error {
	els, err := d.Elements(selector)
	if err != nil {
		return err
	}
	if len(els) == 0 {
		return scrape.ErrWaitTimeout
	}
	return nil
}

// CurrentURL returns the URL of the loaded page.
func (d *Doc) CurrentURL() string { return d.url }

// Title returns the page <title> text.
func (d *Doc) Title() string { return d.title }

// element adapts one HTML node to scrape.Element.
type element struct {
	n *html.Node
}

func (e element) Attribute(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Key == name {
			return strings.TrimSpace(a.Val), true
		}
	}
	return "", false
}

// Text approximates visible text: text nodes joined with single spaces,
// script/style/noscript subtrees excluded.
func (e element) Text() string {
	var sb strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(e.n)
	return sb.String()
}

func (e element) HTML() string {
	var sb strings.Builder
	if err := html.Render(&sb, e.n); err != nil {
		return ""
	}
	return sb.String()
}

func (e element) ScrollIntoView() error { return nil }

func (e element) Click() error {
	return errors.New("htmldoc: click not supported")
}

// findTitle extracts the <title> text from a parsed tree.
func findTitle(root *html.Node) string {
	var title string
	walk(root, func(n *html.Node) {
		if title == "" && n.Type == html.ElementNode && n.DataAtom == atom.Title {
			if n.FirstChild != nil {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
		}
	})
	return title
}

// walk visits every node depth-first in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}
