package pipeline

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dailydigest/newscrawler/internal/metrics"
)

// Config controls Orchestrator behavior.
type Config struct {
	ListingURLs []string
	MaxArticles int
	Workers     int
	Source      string
}

// Orchestrator drives one end-to-end run: harvest links from the listing
// pages, then fetch, extract, enrich, assemble and publish each article
// under a bounded worker pool. A failure in one URL's chain is logged and
// dropped; it never aborts sibling URLs.
type Orchestrator struct {
	fetcher   Fetcher
	harvester Harvester
	extractor Extractor
	enricher  Enricher
	publisher Publisher
	clock     Clock
	idGen     IDGenerator
	cfg       Config
	logger    *zap.Logger
}

// NewOrchestrator constructs an Orchestrator.
func NewOrchestrator(
	fetcher Fetcher,
	harvester Harvester,
	extractor Extractor,
	enricher Enricher,
	publisher Publisher,
	clock Clock,
	idGen IDGenerator,
	cfg Config,
	logger *zap.Logger,
) *Orchestrator {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		fetcher:   fetcher,
		harvester: harvester,
		extractor: extractor,
		enricher:  enricher,
		publisher: publisher,
		clock:     clock,
		idGen:     idGen,
		cfg:       cfg,
		logger:    logger,
	}
}

// Run executes one batch. It returns a RunReport with the final counts; the
// only error surfaced is context cancellation. Zero harvested links is a
// reported outcome, not an error.
func (o *Orchestrator) Run(ctx context.Context) (RunReport, error) {
	runID, err := o.idGen.NewID()
	if err != nil {
		return RunReport{}, fmt.Errorf("new run id: %w", err)
	}
	logger := o.logger.With(zap.String("run_id", runID))
	start := o.clock.Now()

	links := o.collectLinks(ctx, logger)
	report := RunReport{RunID: runID, LinksFound: len(links)}

	if len(links) == 0 {
		logger.Info("no article links found")
		report.Duration = o.clock.Now().Sub(start)
		return report, ctx.Err()
	}
	logger.Info("processing links", zap.Int("count", len(links)), zap.Int("workers", o.cfg.Workers))

	var (
		mu        sync.Mutex
		published int
		failed    int
	)

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < o.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for url := range jobs {
				err := o.processURL(ctx, url, logger)
				mu.Lock()
				if err != nil {
					failed++
				} else {
					published++
				}
				mu.Unlock()
			}
		}()
	}

	for _, url := range links {
		jobs <- url
	}
	close(jobs)
	wg.Wait()

	report.Published = published
	report.Failed = failed
	report.Duration = o.clock.Now().Sub(start)
	logger.Info("run complete",
		zap.Int("published", published),
		zap.Int("failed", failed),
		zap.Duration("duration", report.Duration),
	)
	return report, ctx.Err()
}

// collectLinks fetches every listing page and returns the union of harvested
// links, deduplicated in first-seen order and capped at MaxArticles. A
// listing page that fails to fetch contributes nothing.
func (o *Orchestrator) collectLinks(ctx context.Context, logger *zap.Logger) []string {
	var all []string
	for _, src := range o.cfg.ListingURLs {
		body, err := o.fetcher.Fetch(ctx, src)
		if err != nil {
			metrics.ObserveListingPage("error")
			logger.Warn("skip listing page", zap.String("url", src), zap.Error(err))
			continue
		}
		metrics.ObserveListingPage("ok")
		links, err := o.harvester.Harvest(src, body)
		if err != nil {
			logger.Warn("harvest failed", zap.String("url", src), zap.Error(err))
			continue
		}
		logger.Debug("harvested listing page", zap.String("url", src), zap.Int("links", len(links)))
		all = append(all, links...)
	}

	seen := make(map[string]struct{}, len(all))
	deduped := make([]string, 0, len(all))
	for _, u := range all {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		deduped = append(deduped, u)
		if o.cfg.MaxArticles > 0 && len(deduped) >= o.cfg.MaxArticles {
			break
		}
	}
	metrics.AddLinksHarvested(len(deduped))
	return deduped
}

// processURL runs the full fetch, extract, enrich, assemble, publish chain
// for a single article URL.
func (o *Orchestrator) processURL(ctx context.Context, url string, logger *zap.Logger) error {
	start := o.clock.Now()
	article, err := o.buildArticle(ctx, url)
	if err != nil {
		metrics.ObserveArticle("failed")
		logger.Warn("skip article", zap.String("url", url), zap.Error(err))
		return err
	}
	logger.Info("parsed article", zap.String("url", url), zap.String("title", article.Title))

	if err := o.publisher.Upsert(ctx, article); err != nil {
		metrics.ObserveArticle("failed")
		logger.Warn("upsert failed", zap.String("url", url), zap.Error(err))
		return err
	}
	metrics.ObserveArticle("published")
	metrics.ObserveArticleDuration(o.clock.Now().Sub(start))
	logger.Info("upserted article", zap.String("url", url), zap.String("title", article.Title))
	return nil
}

func (o *Orchestrator) buildArticle(ctx context.Context, url string) (Article, error) {
	body, err := o.fetcher.Fetch(ctx, url)
	if err != nil {
		return Article{}, fmt.Errorf("fetch article: %w", err)
	}
	draft, err := o.extractor.Extract(url, body)
	if err != nil {
		return Article{}, fmt.Errorf("extract metadata: %w", err)
	}

	// Enrichment is best-effort: the enricher composition already degrades
	// to a heuristic, so an error here still leaves a usable value.
	summaryInput := firstNonEmpty(draft.Excerpt, draft.Description)
	summary, err := o.enricher.Summarize(ctx, draft.Title, summaryInput)
	if err != nil {
		summary = ""
	}
	classifyInput := firstNonEmpty(draft.Excerpt, summary)
	category, err := o.enricher.Classify(ctx, draft.Title, draft.Description, classifyInput)
	if err != nil || category == "" {
		category = DefaultCategory
	}

	return Assemble(url, o.cfg.Source, draft, summary, category), nil
}
