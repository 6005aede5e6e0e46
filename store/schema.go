package store

// Schema is the full archive schema. Timestamps are Unix milliseconds.
const Schema = `
-- One row per scraping run
CREATE TABLE IF NOT EXISTS batches (
    id            TEXT PRIMARY KEY,
    scraped_at    INTEGER NOT NULL,
    article_count INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_batches_time ON batches(scraped_at DESC);

-- Articles belonging to a batch
CREATE TABLE IF NOT EXISTS articles (
    id               TEXT PRIMARY KEY,
    batch_id         TEXT NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
    idx              INTEGER NOT NULL,
    source_url       TEXT NOT NULL,
    title_original   TEXT NOT NULL DEFAULT '',
    title_translated TEXT NOT NULL DEFAULT '',
    body_text        TEXT NOT NULL DEFAULT '',
    cover_image_url  TEXT NOT NULL DEFAULT '',
    local_image_path TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_articles_batch ON articles(batch_id, idx);
CREATE UNIQUE INDEX IF NOT EXISTS idx_articles_batch_url ON articles(batch_id, source_url);

-- FTS5 on articles (title + body)
CREATE VIRTUAL TABLE IF NOT EXISTS articles_fts USING fts5(
    title_original, body_text, content='articles', content_rowid='rowid',
    tokenize='unicode61 remove_diacritics 2'
);

-- Triggers to keep FTS5 in sync
CREATE TRIGGER IF NOT EXISTS articles_ai AFTER INSERT ON articles BEGIN
    INSERT INTO articles_fts(rowid, title_original, body_text) VALUES (new.rowid, new.title_original, new.body_text);
END;
CREATE TRIGGER IF NOT EXISTS articles_ad AFTER DELETE ON articles BEGIN
    INSERT INTO articles_fts(articles_fts, rowid, title_original, body_text) VALUES('delete', old.rowid, old.title_original, old.body_text);
END;
CREATE TRIGGER IF NOT EXISTS articles_au AFTER UPDATE ON articles BEGIN
    INSERT INTO articles_fts(articles_fts, rowid, title_original, body_text) VALUES('delete', old.rowid, old.title_original, old.body_text);
    INSERT INTO articles_fts(rowid, title_original, body_text) VALUES (new.rowid, new.title_original, new.body_text);
END;
`
