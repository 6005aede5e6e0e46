package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hazyhaar/prensa/scrape"
)

// FileStore persists batch output under a root directory.
type FileStore struct {
	root string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{root: dir}
}

// Root returns the output directory.
func (fs *FileStore) Root() string { return fs.root }

// SaveArticleText writes one article's full text to
// article_<n>_<slug>.txt and returns the written path.
func (fs *FileStore) SaveArticleText(a scrape.Article) (string, error) {
	if err := fs.ensureDir(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("article_%d_%s.txt", a.Index, slugify(a.TitleOriginal))
	path := filepath.Join(fs.root, name)

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== ARTICLE %d ===\n", a.Index)
	fmt.Fprintf(&sb, "TITLE: %s\n", a.TitleOriginal)
	if a.TitleTranslated != "" {
		fmt.Fprintf(&sb, "TITLE (EN): %s\n", a.TitleTranslated)
	}
	fmt.Fprintf(&sb, "URL: %s\n", a.SourceURL)
	if a.HasImage() {
		fmt.Fprintf(&sb, "IMAGE: %s\n", a.CoverImageURL)
	}
	sb.WriteString("\n")
	sb.WriteString(a.BodyText)
	sb.WriteString("\n")

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("report: write %s: %w", path, err)
	}
	return path, nil
}

// SaveBatchJSON writes the whole batch, with a scrape timestamp, as
// indented JSON and returns the written path.
func (fs *FileStore) SaveBatchJSON(scrapedAt time.Time, articles []scrape.Article) (string, error) {
	if err := fs.ensureDir(); err != nil {
		return "", err
	}

	batch := struct {
		ScrapedAt time.Time        `json:"scraped_at"`
		Count     int              `json:"count"`
		Articles  []scrape.Article `json:"articles"`
	}{
		ScrapedAt: scrapedAt.UTC(),
		Count:     len(articles),
		Articles:  articles,
	}

	raw, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return "", fmt.Errorf("report: marshal batch: %w", err)
	}

	path := filepath.Join(fs.root, "batch.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("report: write %s: %w", path, err)
	}
	return path, nil
}

func (fs *FileStore) ensureDir() error {
	if err := os.MkdirAll(fs.root, 0o755); err != nil {
		return fmt.Errorf("report: create %s: %w", fs.root, err)
	}
	return nil
}

// slugify reduces a title to a short filesystem-safe token: lowercase,
// alphanumerics and hyphens only, at most five words.
func slugify(title string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			sb.WriteByte(' ')
		}
	}
	words := strings.Fields(sb.String())
	if len(words) > 5 {
		words = words[:5]
	}
	if len(words) == 0 {
		return "untitled"
	}
	return strings.Join(words, "-")
}
