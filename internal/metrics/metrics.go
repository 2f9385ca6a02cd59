// Package metrics exposes Prometheus collectors for the scraper.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	scraperListingPagesTotal       *prometheus.CounterVec
	scraperLinksHarvestedTotal     prometheus.Counter
	scraperArticlesTotal           *prometheus.CounterVec
	scraperEnrichmentFallbackTotal *prometheus.CounterVec
	scraperArticleDurationSeconds  prometheus.Histogram

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		scraperListingPagesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraper_listing_pages_total",
				Help: "Total number of listing pages fetched, labeled by outcome.",
			},
			[]string{"status"},
		)

		scraperLinksHarvestedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "scraper_links_harvested_total",
				Help: "Total number of candidate article links selected for processing.",
			},
		)

		scraperArticlesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraper_articles_total",
				Help: "Total number of articles processed, labeled by outcome.",
			},
			[]string{"status"},
		)

		scraperEnrichmentFallbackTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraper_enrichment_fallbacks_total",
				Help: "Total number of enrichment calls that fell back to the local heuristic, labeled by operation.",
			},
			[]string{"operation"},
		)

		scraperArticleDurationSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "scraper_article_duration_seconds",
				Help:    "Histogram of per-article pipeline latencies.",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
			},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveListingPage increments the listing page counter for the given outcome.
func ObserveListingPage(status string) {
	if scraperListingPagesTotal == nil {
		return
	}
	scraperListingPagesTotal.WithLabelValues(status).Inc()
}

// AddLinksHarvested adds the number of links selected in one run.
func AddLinksHarvested(n int) {
	if scraperLinksHarvestedTotal == nil || n <= 0 {
		return
	}
	scraperLinksHarvestedTotal.Add(float64(n))
}

// ObserveArticle increments the article counter for the given outcome.
func ObserveArticle(status string) {
	if scraperArticlesTotal == nil {
		return
	}
	scraperArticlesTotal.WithLabelValues(status).Inc()
}

// ObserveEnrichmentFallback increments the fallback counter for an operation.
func ObserveEnrichmentFallback(operation string) {
	if scraperEnrichmentFallbackTotal == nil {
		return
	}
	scraperEnrichmentFallbackTotal.WithLabelValues(operation).Inc()
}

// ObserveArticleDuration records one article's end-to-end latency.
func ObserveArticleDuration(d time.Duration) {
	if scraperArticleDurationSeconds == nil {
		return
	}
	scraperArticleDurationSeconds.Observe(d.Seconds())
}
