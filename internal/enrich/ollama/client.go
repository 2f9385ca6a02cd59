// Package ollama adapts the local text-generation service for enrichment.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dailydigest/newscrawler/internal/pipeline"
)

// Generation options per operation. Summaries want some variety; the
// classifier must be deterministic and terse.
const (
	summaryTemperature  = 0.3
	summaryMaxTokens    = 256
	classifyTemperature = 0.0
	classifyMaxTokens   = 24
)

// Config controls the Ollama client.
type Config struct {
	// URL is the full generate endpoint, e.g. http://localhost:11434/api/generate.
	URL string
	// Model is the model name passed on every request.
	Model string
	// SummarySentences is the sentence-count hint baked into the summary
	// prompt, e.g. "3-5".
	SummarySentences string
	// Timeout bounds each generation call. Local inference is slow, so this
	// is typically much longer than the page-fetch timeout.
	Timeout time.Duration
}

// Client calls the text-generation service. Both operations return an error
// on transport failure, a non-2xx status, malformed JSON, or (for Classify)
// an answer outside the category enumeration; callers compose this client
// with a local fallback.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// New builds a Client sharing the given HTTP client.
func New(cfg Config, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.SummarySentences == "" {
		cfg.SummarySentences = "3-5"
	}
	return &Client{cfg: cfg, httpClient: httpClient, logger: logger}
}

// Summarize asks the model for a neutral, factual summary of the article.
func (c *Client) Summarize(ctx context.Context, title, content string) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize the following news article in %s sentences. "+
			"Keep it neutral, factual, and concise. Only output the summary, nothing else.\n\n"+
			"TITLE: %s\n\nCONTENT: %s",
		c.cfg.SummarySentences, title, content,
	)
	text, err := c.generate(ctx, prompt, summaryTemperature, summaryMaxTokens)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return text, nil
}

// Classify asks the model for exactly one label from the allowed category
// set. An answer outside the set is an error so the caller can fall back.
func (c *Client) Classify(ctx context.Context, title, description, content string) (pipeline.Category, error) {
	names := make([]string, len(pipeline.AllowedCategories))
	for i, cat := range pipeline.AllowedCategories {
		names[i] = string(cat)
	}
	prompt := fmt.Sprintf(
		"You are a news classifier. Choose exactly one category from this list: %s. "+
			"Return only the category name, nothing else.\n\n"+
			"TITLE: %s\n\nDESCRIPTION: %s\n\nCONTENT: %s",
		strings.Join(names, ", "), title, description, content,
	)
	text, err := c.generate(ctx, prompt, classifyTemperature, classifyMaxTokens)
	if err != nil {
		return "", fmt.Errorf("classify: %w", err)
	}
	category, ok := pipeline.ParseCategory(text)
	if !ok {
		return "", fmt.Errorf("classify: unrecognized category %q", text)
	}
	return category, nil
}

func (c *Client) generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:  c.cfg.Model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: temperature,
			NumPredict:  maxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call generate endpoint: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Debug("close generate response body", zap.Error(closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("generate endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	return strings.TrimSpace(out.Response), nil
}
