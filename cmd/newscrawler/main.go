// Package main wires together the scraper binary.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dailydigest/newscrawler/internal/clock/system"
	"github.com/dailydigest/newscrawler/internal/config"
	"github.com/dailydigest/newscrawler/internal/enrich"
	"github.com/dailydigest/newscrawler/internal/enrich/heuristic"
	"github.com/dailydigest/newscrawler/internal/enrich/ollama"
	"github.com/dailydigest/newscrawler/internal/extract"
	collyfetcher "github.com/dailydigest/newscrawler/internal/fetcher/colly"
	"github.com/dailydigest/newscrawler/internal/harvest"
	"github.com/dailydigest/newscrawler/internal/id/uuid"
	"github.com/dailydigest/newscrawler/internal/logging"
	"github.com/dailydigest/newscrawler/internal/metrics"
	"github.com/dailydigest/newscrawler/internal/ops"
	"github.com/dailydigest/newscrawler/internal/pipeline"
	backendpublisher "github.com/dailydigest/newscrawler/internal/publisher/backend"
	memorypublisher "github.com/dailydigest/newscrawler/internal/publisher/memory"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	// Local development keeps secrets in .env; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.Init()

	var opsServer *ops.Server
	if cfg.Ops.Enabled {
		opsServer = ops.NewServer(cfg.Ops.Addr, logger.Named("ops"))
		opsServer.Start()
	}

	// One pooled client shared by the enrichment and publish paths; the
	// page fetcher manages its own transport inside the collector.
	httpClient := &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:    100,
			IdleConnTimeout: 90 * time.Second,
		},
	}

	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent: cfg.Scrape.UserAgent,
		Timeout:   cfg.PageTimeout(),
	})
	harvester := harvest.New(harvest.Config{
		Origin:      cfg.Site.Origin,
		Domain:      cfg.Site.Domain,
		MaxArticles: cfg.Scrape.MaxArticles,
	}, logger.Named("harvest"))
	extractor := extract.New()

	live := ollama.New(ollama.Config{
		URL:              cfg.Ollama.URL,
		Model:            cfg.Ollama.Model,
		SummarySentences: cfg.Scrape.SummarySentences,
		Timeout:          cfg.OllamaTimeout(),
	}, httpClient, logger.Named("ollama"))
	enricher := enrich.NewFallback(live, heuristic.New(), logger.Named("enrich"))

	var publisher pipeline.Publisher
	if cfg.Backend.ArticlesURL == "" {
		logger.Warn("no backend endpoint configured, articles will not be published")
		publisher = memorypublisher.New()
	} else {
		backendPub, err := backendpublisher.New(backendpublisher.Config{
			URL:     cfg.Backend.ArticlesURL,
			Secret:  cfg.Backend.WebhookSecret,
			Timeout: cfg.PageTimeout(),
		}, httpClient, logger.Named("backend"))
		if err != nil {
			logger.Fatal("backend publisher init failed", zap.Error(err))
		}
		publisher = backendPub
	}

	orchestrator := pipeline.NewOrchestrator(
		fetcher,
		harvester,
		extractor,
		enricher,
		publisher,
		system.New(),
		uuid.New(),
		pipeline.Config{
			ListingURLs: cfg.ListingURLs(),
			MaxArticles: cfg.Scrape.MaxArticles,
			Workers:     cfg.Scrape.Workers,
			Source:      cfg.Site.Source,
		},
		logger.Named("pipeline"),
	)

	report, err := orchestrator.Run(ctx)
	if err != nil {
		logger.Error("run aborted", zap.Error(err))
	}
	logger.Info("parsed articles",
		zap.String("run_id", report.RunID),
		zap.Int("links_found", report.LinksFound),
		zap.Int("published", report.Published),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", report.Duration),
	)

	if opsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := opsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("ops shutdown error", zap.Error(err))
		}
	}
}
