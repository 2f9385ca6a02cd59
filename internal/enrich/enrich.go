// Package enrich composes enrichment implementations.
//
// The live text-generation adapter and the local heuristic adapter both
// satisfy pipeline.Enricher; Fallback glues them together as "try live,
// fall back to the heuristic on any failure or invalid result". Enrichment
// degradation is not an error: Fallback never fails.
package enrich

import (
	"context"

	"go.uber.org/zap"

	"github.com/dailydigest/newscrawler/internal/metrics"
	"github.com/dailydigest/newscrawler/internal/pipeline"
)

// Fallback tries the live enricher first and silently downgrades to the
// local one. It never returns an error.
type Fallback struct {
	live   pipeline.Enricher
	local  pipeline.Enricher
	logger *zap.Logger
}

// NewFallback builds a Fallback. live may be nil, in which case every call
// goes straight to local.
func NewFallback(live, local pipeline.Enricher, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{live: live, local: local, logger: logger}
}

// Summarize returns the live summary, or the local one (empty) when the
// service is unavailable or returns an unusable answer.
func (f *Fallback) Summarize(ctx context.Context, title, content string) (string, error) {
	if f.live != nil {
		summary, err := f.live.Summarize(ctx, title, content)
		if err == nil {
			return summary, nil
		}
		metrics.ObserveEnrichmentFallback("summarize")
		f.logger.Warn("summarization degraded to heuristic", zap.Error(err))
	}
	return f.local.Summarize(ctx, title, content)
}

// Classify returns the live category when it is a valid enumeration member,
// otherwise the heuristic one. The result is never empty.
func (f *Fallback) Classify(ctx context.Context, title, description, content string) (pipeline.Category, error) {
	if f.live != nil {
		category, err := f.live.Classify(ctx, title, description, content)
		if err == nil && category != "" {
			return category, nil
		}
		metrics.ObserveEnrichmentFallback("classify")
		f.logger.Warn("classification degraded to heuristic", zap.Error(err))
	}
	return f.local.Classify(ctx, title, description, content)
}
