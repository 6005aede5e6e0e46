// Package report renders scraped batches for humans and persists them to
// disk: console summaries, per-article text files, a markdown rendition of
// the body, and batch JSON.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/hazyhaar/prensa/analyze"
	"github.com/hazyhaar/prensa/scrape"
)

const (
	separator = "═══════════════════════════════════════════════════════"
	thinSep   = "───────────────────────────────────────────────────────"

	// contentPreviewLen caps body text on the console; the full text goes
	// to the article files.
	contentPreviewLen = 500
)

// Console writes human-readable batch reports.
type Console struct {
	w io.Writer
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Header prints a boxed section title.
func (c *Console) Header(title string) {
	fmt.Fprintf(c.w, "\n%s\n  %s\n%s\n", separator, title, separator)
}

// SectionDivider prints a thin labelled divider.
func (c *Console) SectionDivider(label string) {
	fmt.Fprintf(c.w, "\n── %s ──────────────────────────────\n", label)
}

// ArticleSummary prints one line-per-field summaries of a batch.
func (c *Console) ArticleSummary(articles []scrape.Article) {
	c.Header("SCRAPED ARTICLES")
	for _, a := range articles {
		fmt.Fprintf(c.w, "\n  [Article %d]\n", a.Index)
		fmt.Fprintf(c.w, "  Title      : %s\n", a.TitleOriginal)
		translated := a.TitleTranslated
		if translated == "" {
			translated = "Not translated yet"
		}
		fmt.Fprintf(c.w, "  Translated : %s\n", translated)
		fmt.Fprintf(c.w, "  URL        : %s\n", a.SourceURL)
		if a.HasImage() {
			fmt.Fprintf(c.w, "  Image      : %s\n", a.CoverImageURL)
		} else {
			fmt.Fprintf(c.w, "  Image      : No image\n")
		}
		fmt.Fprintf(c.w, "  Content    : %d chars\n", len(a.BodyText))
		fmt.Fprintf(c.w, "  %s\n", thinSep)
	}
}

// OriginalArticles prints each article with a bounded content preview.
func (c *Console) OriginalArticles(articles []scrape.Article) {
	c.Header("ARTICLES — ORIGINAL LANGUAGE")
	for _, a := range articles {
		fmt.Fprintf(c.w, "\n  ┌─ ARTICLE %d ─────────────────────────────────────────\n", a.Index)
		fmt.Fprintf(c.w, "  │ TITLE   : %s\n", a.TitleOriginal)
		fmt.Fprintln(c.w, "  │")
		fmt.Fprintln(c.w, "  │ CONTENT :")

		preview := a.BodyText
		if len(preview) > contentPreviewLen {
			preview = preview[:contentPreviewLen] + "...\n[Full content saved to the articles directory]"
		}
		for _, line := range strings.Split(preview, "\n") {
			fmt.Fprintf(c.w, "  │   %s\n", line)
		}

		fmt.Fprintln(c.w, "  │")
		if a.LocalImagePath != "" {
			fmt.Fprintf(c.w, "  │ IMAGE   : saved → %s\n", a.LocalImagePath)
		} else {
			fmt.Fprintf(c.w, "  │ IMAGE   : no image available\n")
		}
		fmt.Fprintf(c.w, "  │ URL     : %s\n", a.SourceURL)
		fmt.Fprintln(c.w, "  └─────────────────────────────────────────────────────")
	}
}

// TranslatedTitles prints original and translated titles side by side.
func (c *Console) TranslatedTitles(articles []scrape.Article) {
	c.Header("TRANSLATED TITLES")
	for _, a := range articles {
		fmt.Fprintf(c.w, "\n  [%d] %s\n", a.Index, a.TitleOriginal)
		fmt.Fprintf(c.w, "      %s\n", a.TitleTranslated)
	}
}

// WordFrequency prints the repeated-word table.
func (c *Console) WordFrequency(counts []analyze.WordCount) {
	c.Header("WORD FREQUENCY ANALYSIS (Words Repeated > 2)")
	if len(counts) == 0 {
		fmt.Fprintln(c.w, "\n  No words repeated more than twice across titles.")
		return
	}
	fmt.Fprintf(c.w, "\n  %-25s %s\n", "WORD", "COUNT")
	fmt.Fprintf(c.w, "  %s\n", thinSep)
	for _, wc := range counts {
		fmt.Fprintf(c.w, "  %-25s %d\n", wc.Word, wc.Count)
	}
	fmt.Fprintln(c.w)
}
