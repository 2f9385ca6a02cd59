package pipeline

import (
	"context"
	"time"
)

// Fetcher retrieves raw page markup for a URL. Implementations must treat a
// non-2xx status as an error.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Harvester extracts candidate article URLs from a listing page.
type Harvester interface {
	Harvest(pageURL string, body []byte) ([]string, error)
}

// Extractor derives a metadata draft from a fetched article page.
type Extractor interface {
	Extract(pageURL string, body []byte) (Draft, error)
}

// Enricher produces best-effort enrichment for an article. Live
// implementations return an error on transport failure or an unusable
// answer; the heuristic implementation never fails.
type Enricher interface {
	Summarize(ctx context.Context, title, content string) (string, error)
	Classify(ctx context.Context, title, description, content string) (Category, error)
}

// Publisher upserts an Article into the content store, keyed by URL.
type Publisher interface {
	Upsert(ctx context.Context, article Article) error
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces run IDs (UUIDs).
type IDGenerator interface {
	NewID() (string, error)
}
