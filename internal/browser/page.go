package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/hazyhaar/prensa/scrape"
)

// Page implements scrape.Document over one stealth Chrome tab.
type Page struct {
	page   *rod.Page
	logger *slog.Logger
}

// OpenPage creates a new stealth tab on the managed browser.
func OpenPage(mgr *Manager) (*Page, error) {
	b := mgr.Browser()
	if b == nil {
		return nil, fmt.Errorf("browser: no active browser")
	}
	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}
	return &Page{page: page, logger: mgr.cfg.Logger}, nil
}

// Navigate loads a URL and waits for the load event. A load-wait timeout
// is logged but not fatal: the page is usually usable already.
func (p *Page) Navigate(ctx context.Context, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := p.page.Context(navCtx).Navigate(url); err != nil {
		return fmt.Errorf("browser: navigate %s: %w", url, err)
	}
	if err := p.page.Context(navCtx).WaitLoad(); err != nil {
		p.logger.Warn("browser: wait load timeout", "url", url, "error", err)
	}
	return nil
}

// Elements returns all elements matching selector, in document order.
func (p *Page) Elements(selector string) ([]scrape.Element, error) {
	els, err := p.page.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("browser: query %q: %w", selector, err)
	}
	out := make([]scrape.Element, 0, len(els))
	for _, el := range els {
		out = append(out, pageElement{el: el})
	}
	return out, nil
}

// WaitPresent blocks until selector matches or the budget elapses.
func (p *Page) WaitPresent(ctx context.Context, selector string, budget time.Duration) error {
	_, err := p.page.Context(ctx).Timeout(budget).Element(selector)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return scrape.ErrWaitTimeout
		}
		return fmt.Errorf("browser: wait %q: %w", selector, err)
	}
	return nil
}

// CurrentURL returns the tab's current URL.
func (p *Page) CurrentURL() string {
	info, err := p.page.Info()
	if err != nil {
		p.logger.Debug("browser: page info failed", "error", err)
		return ""
	}
	return info.URL
}

// Title returns the tab's document title.
func (p *Page) Title() string {
	info, err := p.page.Info()
	if err != nil {
		p.logger.Debug("browser: page info failed", "error", err)
		return ""
	}
	return info.Title
}

// Close closes the tab.
func (p *Page) Close() error {
	if p.page != nil {
		return p.page.Close()
	}
	return nil
}

// pageElement adapts one Rod element to scrape.Element.
type pageElement struct {
	el *rod.Element
}

func (e pageElement) Attribute(name string) (string, bool) {
	v, err := e.el.Attribute(name)
	if err != nil || v == nil {
		return "", false
	}
	return *v, true
}

func (e pageElement) Text() string {
	t, err := e.el.Text()
	if err != nil {
		return ""
	}
	return t
}

func (e pageElement) HTML() string {
	h, err := e.el.HTML()
	if err != nil {
		return ""
	}
	return h
}

func (e pageElement) ScrollIntoView() error {
	return e.el.ScrollIntoView()
}

func (e pageElement) Click() error {
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}
