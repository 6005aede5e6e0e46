package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var fakeJPEG = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}

func newTestDownloader(t *testing.T, handler http.HandlerFunc) (*Downloader, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{Dir: t.TempDir()}), srv
}

func TestCoverImageSavesFile(t *testing.T) {
	// WHAT: Download one image and check path, name, and bytes.
	// WHY: The local path ends up in reports and the archive; the naming
	// scheme ties the file back to its article index.
	d, srv := newTestDownloader(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(fakeJPEG)
	})

	path, err := d.CoverImage(context.Background(), srv.URL+"/covers/photo.jpg", 3)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if base := filepath.Base(path); base != "article_3_cover.jpg" {
		t.Errorf("filename = %q", base)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != string(fakeJPEG) {
		t.Errorf("file content differs from served bytes")
	}
}

func TestCoverImageSkipsUnusableURLs(t *testing.T) {
	// WHAT: Blank, data URI, and SVG inputs.
	// WHY: These are skipped with a warning, not errors; a missing image
	// never fails an article.
	d := New(Config{Dir: t.TempDir()})
	for _, u := range []string{"", "   ", "data:image/png;base64,iVBOR", "https://cdn.example.com/logo.svg"} {
		path, err := d.CoverImage(context.Background(), u, 1)
		if err != nil {
			t.Errorf("CoverImage(%q) error: %v", u, err)
		}
		if path != "" {
			t.Errorf("CoverImage(%q) = %q, want empty", u, path)
		}
	}
}

func TestCoverImageServerError(t *testing.T) {
	// WHAT: The CDN answers 404.
	// WHY: A real fetch failure is an error the caller logs; no partial
	// file may remain.
	d, srv := newTestDownloader(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	if _, err := d.CoverImage(context.Background(), srv.URL+"/missing.jpg", 1); err == nil {
		t.Fatalf("want error for 404")
	}
}

func TestCoverImageDefaultExtension(t *testing.T) {
	// WHAT: A CDN URL with no recognizable extension.
	// WHY: Keyword-matched CDN URLs often lack extensions; .jpg is the
	// safe default.
	d, srv := newTestDownloader(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(fakeJPEG)
	})
	path, err := d.CoverImage(context.Background(), srv.URL+"/media/12345", 7)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if !strings.HasSuffix(path, "article_7_cover.jpg") {
		t.Errorf("path = %q, want .jpg default", path)
	}
}

func TestExtension(t *testing.T) {
	// WHAT: Extension selection from assorted URLs.
	// WHY: Query strings and unknown extensions must not leak into
	// filenames.
	cases := []struct {
		url  string
		want string
	}{
		{"https://cdn.example.com/a.png", ".png"},
		{"https://cdn.example.com/a.webp?w=1200", ".webp"},
		{"https://cdn.example.com/a.JPEG", ".jpeg"},
		{"https://cdn.example.com/media/123", ".jpg"},
		{"https://cdn.example.com/doc.pdf", ".jpg"},
	}
	for _, tc := range cases {
		if got := extension(tc.url); got != tc.want {
			t.Errorf("extension(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
