package scrape

// Article is one extracted article. Index is assigned 1..N in batch order
// and never changes; SourceURL is set before any extraction step runs.
// BodyText is never empty once extraction completes: it holds either real
// content or a paywall sentinel.
//
// TitleTranslated and LocalImagePath are filled by external collaborators
// (translate client, image downloader) after the batch completes. An Article
// is owned by the single extraction pass that created it and is never
// mutated concurrently.
type Article struct {
	Index           int    `json:"index"`
	SourceURL       string `json:"source_url"`
	TitleOriginal   string `json:"title_original"`
	TitleTranslated string `json:"title_translated,omitempty"`
	BodyText        string `json:"body_text"`
	CoverImageURL   string `json:"cover_image_url,omitempty"`
	LocalImagePath  string `json:"local_image_path,omitempty"`

	// BodyHTML is the raw markup of the body container when the
	// body-element strategy matched. Used for markdown archival only,
	// not persisted in the batch JSON.
	BodyHTML string `json:"-"`
}

// HasImage reports whether a cover image URL was resolved.
func (a *Article) HasImage() bool { return a.CoverImageURL != "" }
