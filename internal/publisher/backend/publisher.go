// Package backend publishes articles to the content store over HTTP.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dailydigest/newscrawler/internal/pipeline"
)

// ErrMissingSecret is returned when the webhook secret is not configured.
// A missing secret is a deployment mistake, not a transient condition, so it
// is surfaced at construction time instead of failing every upsert.
var ErrMissingSecret = errors.New("webhook secret is not configured")

// secretHeader authenticates upserts against the backend.
const secretHeader = "x-webhook-secret"

// maxLoggedResponse truncates the backend response body in debug logs.
const maxLoggedResponse = 500

// Config controls the backend publisher.
type Config struct {
	// URL is the articles endpoint, e.g. http://localhost:3001/api/articles.
	URL string
	// Secret is the shared webhook secret. Required.
	Secret string
	// Timeout bounds each upsert call.
	Timeout time.Duration
}

// Publisher upserts articles into the content store. The store keys on the
// article URL, so sending the same article twice is safe.
type Publisher struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// New builds a Publisher. It fails with ErrMissingSecret when no webhook
// secret is configured.
func New(cfg Config, httpClient *http.Client, logger *zap.Logger) (*Publisher, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Publisher{cfg: cfg, httpClient: httpClient, logger: logger}, nil
}

// Upsert POSTs the article as JSON. Non-2xx responses are errors.
func (p *Publisher) Upsert(ctx context.Context, article pipeline.Article) error {
	payload, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("marshal article: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, p.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build upsert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(secretHeader, p.cfg.Secret)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post article: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			p.logger.Debug("close upsert response body", zap.Error(closeErr))
		}
	}()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedResponse))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upsert returned %d: %s", resp.StatusCode, string(body))
	}
	if len(body) > 0 {
		p.logger.Debug("backend response", zap.String("url", article.URL), zap.ByteString("body", body))
	}
	return nil
}
