package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/microcosm-cc/bluemonday"

	"github.com/hazyhaar/prensa/scrape"
)

// markdownPolicy strips scripts, event handlers, and tracking markup
// before conversion. UGC keeps the structural tags articles use.
var markdownPolicy = bluemonday.UGCPolicy()

var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	),
)

// BodyMarkdown converts an article's body HTML to markdown. The HTML is
// sanitized first. Empty input or a conversion failure falls back to the
// plain body text, so the markdown file is never worse than the text file.
func BodyMarkdown(a scrape.Article) string {
	if strings.TrimSpace(a.BodyHTML) == "" {
		return a.BodyText
	}
	clean := markdownPolicy.Sanitize(a.BodyHTML)
	md, err := mdConverter.ConvertString(clean, converter.WithDomain(a.SourceURL))
	if err != nil || strings.TrimSpace(md) == "" {
		return a.BodyText
	}
	return strings.TrimSpace(md)
}

// SaveArticleMarkdown writes article_<n>_<slug>.md with a title header
// and source link, and returns the written path.
func (fs *FileStore) SaveArticleMarkdown(a scrape.Article) (string, error) {
	if err := fs.ensureDir(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("article_%d_%s.md", a.Index, slugify(a.TitleOriginal))
	path := filepath.Join(fs.root, name)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", a.TitleOriginal)
	fmt.Fprintf(&sb, "[%s](%s)\n\n", a.SourceURL, a.SourceURL)
	if a.HasImage() {
		fmt.Fprintf(&sb, "![cover](%s)\n\n", a.CoverImageURL)
	}
	sb.WriteString(BodyMarkdown(a))
	sb.WriteString("\n")

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("report: write %s: %w", path, err)
	}
	return path, nil
}
