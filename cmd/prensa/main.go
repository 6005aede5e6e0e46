// Command prensa scrapes a batch of news articles, translates the titles,
// analyzes word frequency, and archives the result.
//
// Usage:
//
//	prensa                          # scrape with built-in defaults (El País opinion)
//	prensa -config prensa.yaml      # scrape with a YAML config
//	prensa -http-only               # no browser, plain HTTP + parsed HTML
//	prensa -search "palabra"        # FTS search over the archive, no scraping
//
// Translation credentials come from the environment:
//
//	TRANSLATION_API_KEY, TRANSLATION_API_HOST
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hazyhaar/prensa/analyze"
	"github.com/hazyhaar/prensa/download"
	"github.com/hazyhaar/prensa/internal/browser"
	"github.com/hazyhaar/prensa/internal/htmldoc"
	"github.com/hazyhaar/prensa/report"
	"github.com/hazyhaar/prensa/scrape"
	"github.com/hazyhaar/prensa/store"
	"github.com/hazyhaar/prensa/translate"
)

func main() {
	configPath := flag.String("config", "", "path to prensa.yaml config file")
	count := flag.Int("count", 0, "number of articles to scrape (0 = config default)")
	httpOnly := flag.Bool("http-only", false, "use plain HTTP + HTML parsing instead of a browser")
	headful := flag.Bool("headful", false, "run the browser with a visible window")
	outDir := flag.String("out", "output", "directory for article files and images")
	dbPath := flag.String("db", "", "SQLite archive path (empty = no archiving)")
	search := flag.String("search", "", "search the archive instead of scraping (requires -db)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := options{
		configPath: *configPath,
		count:      *count,
		httpOnly:   *httpOnly,
		headful:    *headful,
		outDir:     *outDir,
		dbPath:     *dbPath,
		search:     *search,
	}

	if err := run(ctx, logger, opts); err != nil {
		logger.Error("prensa: fatal", "error", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	count      int
	httpOnly   bool
	headful    bool
	outDir     string
	dbPath     string
	search     string
}

func run(ctx context.Context, logger *slog.Logger, opts options) error {
	if opts.search != "" {
		return runSearch(ctx, opts)
	}
	return runScrape(ctx, logger, opts)
}

func runSearch(ctx context.Context, opts options) error {
	if opts.dbPath == "" {
		return errors.New("search requires -db")
	}
	st, err := store.Open(opts.dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	results, err := st.Search(ctx, opts.search, 20)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Printf("%s\t%s\n", r.Title, r.SourceURL)
	}
	if len(results) == 0 {
		fmt.Println("no matches")
	}
	return nil
}

func runScrape(ctx context.Context, logger *slog.Logger, opts options) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.count > 0 {
		cfg.ArticleCount = opts.count
	}

	doc, cleanup, err := openDocument(ctx, logger, cfg, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	scraper := scrape.New(doc, cfg, logger)

	if err := scraper.OpenHome(ctx); err != nil {
		return err
	}
	if !scraper.VerifyLanguage() {
		logger.Warn("prensa: site language differs from expected",
			"expected", cfg.Language)
	}
	if err := scraper.OpenSection(ctx); err != nil {
		return err
	}

	scrapedAt := time.Now()
	articles, err := scraper.Run(ctx)
	if err != nil {
		return err
	}

	// Cover images. A failed download keeps the remote URL and moves on.
	dl := download.New(download.Config{
		Dir:    filepath.Join(opts.outDir, "images"),
		Logger: logger,
	})
	for i := range articles {
		path, err := dl.CoverImage(ctx, articles[i].CoverImageURL, articles[i].Index)
		if err != nil {
			logger.Warn("prensa: image download failed",
				"index", articles[i].Index, "error", err)
			continue
		}
		articles[i].LocalImagePath = path
	}

	// Title translation. Credentials come from the environment; without
	// them every title carries the no-key prefix and the run continues.
	tr := translate.New(translate.Config{
		APIKey: os.Getenv("TRANSLATION_API_KEY"),
		Host:   os.Getenv("TRANSLATION_API_HOST"),
		Source: cfg.Language,
		Target: "en",
	}, logger)
	for i := range articles {
		articles[i].TitleTranslated = tr.Translate(ctx, articles[i].TitleOriginal)
	}

	console := report.NewConsole(os.Stdout)
	console.ArticleSummary(articles)
	console.OriginalArticles(articles)
	console.TranslatedTitles(articles)

	// Word frequency runs on successfully translated titles only, so a
	// degraded translation never pollutes the counts with its prefix.
	var translated []string
	for _, a := range articles {
		if !translate.Degraded(a.TitleTranslated) {
			translated = append(translated, a.TitleTranslated)
		}
	}
	console.WordFrequency(analyze.WordFrequencyFiltered(translated))

	files := report.NewFileStore(filepath.Join(opts.outDir, "articles"))
	for _, a := range articles {
		if _, err := files.SaveArticleText(a); err != nil {
			logger.Warn("prensa: save article text failed", "index", a.Index, "error", err)
		}
		if _, err := files.SaveArticleMarkdown(a); err != nil {
			logger.Warn("prensa: save article markdown failed", "index", a.Index, "error", err)
		}
	}
	if path, err := files.SaveBatchJSON(scrapedAt, articles); err != nil {
		logger.Warn("prensa: save batch json failed", "error", err)
	} else {
		logger.Info("prensa: batch saved", "path", path)
	}

	if opts.dbPath != "" {
		st, err := store.Open(opts.dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		batchID, err := st.SaveBatch(ctx, scrapedAt, articles)
		if err != nil {
			return err
		}
		logger.Info("prensa: batch archived", "batch", batchID, "db", opts.dbPath)
	}

	return nil
}

func loadConfig(path string) (scrape.Config, error) {
	if path == "" {
		return scrape.DefaultConfig(), nil
	}
	return scrape.LoadConfigFile(path)
}

// openDocument builds the Document session: a stealth Chrome tab by
// default, a parsed-HTML fetcher with -http-only.
func openDocument(ctx context.Context, logger *slog.Logger, cfg scrape.Config, opts options) (scrape.Document, func(), error) {
	if opts.httpOnly {
		doc := htmldoc.New(htmldoc.NewHTTPFetcher(htmldoc.FetchConfig{
			AcceptLanguage: cfg.Language,
		}))
		return doc, func() {}, nil
	}

	mgr := browser.NewManager(browser.Config{
		Headful:       opts.headful,
		Language:      cfg.Language,
		DisableImages: true,
		Logger:        logger,
	})
	if _, err := mgr.Start(ctx); err != nil {
		return nil, nil, err
	}
	page, err := browser.OpenPage(mgr)
	if err != nil {
		mgr.Close()
		return nil, nil, err
	}
	cleanup := func() {
		page.Close()
		mgr.Close()
	}
	return page, cleanup, nil
}
