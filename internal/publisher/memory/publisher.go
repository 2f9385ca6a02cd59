// Package memory contains an in-memory publisher for tests and dry runs.
package memory

import (
	"context"
	"sync"

	"github.com/dailydigest/newscrawler/internal/pipeline"
)

// Publisher stores upserted articles for inspection instead of sending them
// anywhere. Used when no backend endpoint is configured.
type Publisher struct {
	mu       sync.RWMutex
	articles []pipeline.Article
}

// New returns a memory Publisher.
func New() *Publisher {
	return &Publisher{}
}

// Upsert records the article.
func (p *Publisher) Upsert(_ context.Context, article pipeline.Article) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.articles = append(p.articles, article)
	return nil
}

// Articles returns the recorded upserts.
func (p *Publisher) Articles() []pipeline.Article {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]pipeline.Article, len(p.articles))
	copy(out, p.articles)
	return out
}
