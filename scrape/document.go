package scrape

import (
	"context"
	"errors"
	"time"
)

// ErrWaitTimeout is returned by Document.WaitPresent when the wait budget
// elapses before any element matches the selector.
var ErrWaitTimeout = errors.New("prensa: wait timeout")

// Document is the navigable-page capability extraction runs against.
// Implementations: a live Chrome tab (internal/browser) and a parsed HTML
// tree for HTTP-only mode and tests (internal/htmldoc).
//
// Selector strings are CSS. Comma-separated selector lists match in
// document order across all alternatives.
type Document interface {
	// Navigate loads a URL, replacing the current page state.
	Navigate(ctx context.Context, url string) error

	// Elements returns all elements matching selector, in document order.
	// A selector that matches nothing yields an empty slice, not an error.
	Elements(selector string) ([]Element, error)

	// WaitPresent blocks until at least one element matches selector or the
	// budget elapses, in which case it returns ErrWaitTimeout.
	WaitPresent(ctx context.Context, selector string, budget time.Duration) error

	// CurrentURL returns the URL of the loaded page.
	CurrentURL() string

	// Title returns the page <title> text.
	Title() string
}

// Element is a handle on one DOM element of a Document.
type Element interface {
	// Attribute returns the value of a named attribute.
	// ok is false when the attribute is absent.
	Attribute(name string) (value string, ok bool)

	// Text returns the element's visible text.
	Text() string

	// HTML returns the element's outer HTML, including raw script content.
	HTML() string

	// ScrollIntoView brings the element into the viewport so lazy-loaded
	// content renders. No-op for non-rendering implementations.
	ScrollIntoView() error

	// Click dispatches a click on the element.
	Click() error
}
