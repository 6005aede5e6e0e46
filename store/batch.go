package store

import (
	"context"
	"fmt"
	"time"

	"github.com/hazyhaar/prensa/scrape"
)

// SearchResult is one FTS5 hit.
type SearchResult struct {
	ArticleID string  `json:"article_id"`
	BatchID   string  `json:"batch_id"`
	Title     string  `json:"title"`
	SourceURL string  `json:"source_url"`
	Rank      float64 `json:"rank"`
}

// BatchSummary describes one archived run.
type BatchSummary struct {
	ID           string    `json:"id"`
	ScrapedAt    time.Time `json:"scraped_at"`
	ArticleCount int       `json:"article_count"`
}

// SaveBatch archives one run atomically and returns the batch id.
func (s *Store) SaveBatch(ctx context.Context, scrapedAt time.Time, articles []scrape.Article) (string, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	batchID := newID()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO batches (id, scraped_at, article_count) VALUES (?, ?, ?)`,
		batchID, scrapedAt.UnixMilli(), len(articles)); err != nil {
		return "", fmt.Errorf("store: insert batch: %w", err)
	}

	for _, a := range articles {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO articles
			(id, batch_id, idx, source_url, title_original, title_translated, body_text, cover_image_url, local_image_path)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			newID(), batchID, a.Index, a.SourceURL,
			a.TitleOriginal, a.TitleTranslated, a.BodyText,
			a.CoverImageURL, a.LocalImagePath); err != nil {
			return "", fmt.Errorf("store: insert article %d: %w", a.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("store: commit: %w", err)
	}
	return batchID, nil
}

// Search performs an FTS5 full-text search over archived articles.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT a.id, a.batch_id, a.title_original, a.source_url, rank
		FROM articles_fts f
		JOIN articles a ON a.rowid = f.rowid
		WHERE articles_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("store: search: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ArticleID, &r.BatchID, &r.Title, &r.SourceURL, &r.Rank); err != nil {
			return nil, fmt.Errorf("store: scan search result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// ListBatches returns recent runs, newest first.
func (s *Store) ListBatches(ctx context.Context, limit int) ([]BatchSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, scraped_at, article_count FROM batches ORDER BY scraped_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list batches: %w", err)
	}
	defer rows.Close()

	var out []BatchSummary
	for rows.Next() {
		var (
			b  BatchSummary
			ms int64
		)
		if err := rows.Scan(&b.ID, &ms, &b.ArticleCount); err != nil {
			return nil, fmt.Errorf("store: scan batch: %w", err)
		}
		b.ScrapedAt = time.UnixMilli(ms).UTC()
		out = append(out, b)
	}
	return out, rows.Err()
}

// BatchArticles returns the articles of one batch in scrape order.
func (s *Store) BatchArticles(ctx context.Context, batchID string) ([]scrape.Article, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT idx, source_url, title_original, title_translated, body_text, cover_image_url, local_image_path
		FROM articles WHERE batch_id = ? ORDER BY idx`, batchID)
	if err != nil {
		return nil, fmt.Errorf("store: batch articles: %w", err)
	}
	defer rows.Close()

	var out []scrape.Article
	for rows.Next() {
		var a scrape.Article
		if err := rows.Scan(&a.Index, &a.SourceURL, &a.TitleOriginal,
			&a.TitleTranslated, &a.BodyText, &a.CoverImageURL, &a.LocalImagePath); err != nil {
			return nil, fmt.Errorf("store: scan article: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
