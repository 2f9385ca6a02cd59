// Package config loads and validates scraper configuration via Viper.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Site    SiteConfig    `mapstructure:"site"`
	Scrape  ScrapeConfig  `mapstructure:"scrape"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Ollama  OllamaConfig  `mapstructure:"ollama"`
	Backend BackendConfig `mapstructure:"backend"`
	Ops     OpsConfig     `mapstructure:"ops"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SiteConfig identifies the publisher site being scraped.
type SiteConfig struct {
	// HomeURL is always harvested first.
	HomeURL string `mapstructure:"home_url"`
	// SectionURLs is a comma-separated list of additional listing pages.
	SectionURLs string `mapstructure:"section_urls"`
	// Origin resolves root-relative links, e.g. "https://www.afr.com".
	Origin string `mapstructure:"origin"`
	// Domain rejects harvested links pointing off-site.
	Domain string `mapstructure:"domain"`
	// Source is the constant origin identifier stamped on every article.
	Source string `mapstructure:"source"`
}

// ScrapeConfig governs the batch run.
type ScrapeConfig struct {
	MaxArticles      int    `mapstructure:"max_articles"`
	Workers          int    `mapstructure:"workers"`
	SummarySentences string `mapstructure:"summary_sentences"`
	UserAgent        string `mapstructure:"user_agent"`
}

// HTTPConfig configures page-fetch and publish timeouts.
type HTTPConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// OllamaConfig points at the text-generation service.
type OllamaConfig struct {
	URL            string `mapstructure:"url"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// BackendConfig points at the content store. An empty URL disables
// publishing; a configured URL without a secret is a fatal startup error.
type BackendConfig struct {
	ArticlesURL   string `mapstructure:"articles_url"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// OpsConfig controls the operational HTTP listener.
type OpsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("NEWSCRAWLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("site.home_url", "https://www.afr.com/")
	v.SetDefault("site.section_urls",
		"https://www.afr.com/companies,https://www.afr.com/markets,https://www.afr.com/policy")
	v.SetDefault("site.origin", "https://www.afr.com")
	v.SetDefault("site.domain", "afr.com")
	v.SetDefault("site.source", "AFR")
	v.SetDefault("scrape.max_articles", 30)
	v.SetDefault("scrape.workers", 6)
	v.SetDefault("scrape.summary_sentences", "3-5")
	v.SetDefault("scrape.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120 Safari/537.36")
	v.SetDefault("http.timeout_seconds", 30)
	v.SetDefault("ollama.url", "http://localhost:11434/api/generate")
	v.SetDefault("ollama.model", "llama3.2:3b")
	v.SetDefault("ollama.timeout_seconds", 120)
	v.SetDefault("backend.articles_url", "http://localhost:3001/api/articles")
	v.SetDefault("ops.enabled", false)
	v.SetDefault("ops.addr", ":9090")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Site.HomeURL == "" {
		return fmt.Errorf("site.home_url must be set")
	}
	if _, err := url.Parse(c.Site.Origin); c.Site.Origin == "" || err != nil {
		return fmt.Errorf("site.origin must be a valid URL")
	}
	if c.Site.Domain == "" {
		return fmt.Errorf("site.domain must be set")
	}
	if c.Site.Source == "" {
		return fmt.Errorf("site.source must be set")
	}
	if c.Scrape.MaxArticles <= 0 {
		return fmt.Errorf("scrape.max_articles must be > 0")
	}
	if c.Scrape.Workers <= 0 {
		return fmt.Errorf("scrape.workers must be > 0")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.Ollama.TimeoutSeconds <= 0 {
		return fmt.Errorf("ollama.timeout_seconds must be > 0")
	}
	if c.Ops.Enabled && c.Ops.Addr == "" {
		return fmt.Errorf("ops.addr must be set when ops is enabled")
	}
	return nil
}

// ListingURLs returns the home page plus every configured section page.
func (c Config) ListingURLs() []string {
	urls := []string{c.Site.HomeURL}
	for _, u := range strings.Split(c.Site.SectionURLs, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// PageTimeout returns the page-fetch/publish timeout as a duration.
func (c Config) PageTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// OllamaTimeout returns the text-generation timeout as a duration.
func (c Config) OllamaTimeout() time.Duration {
	return time.Duration(c.Ollama.TimeoutSeconds) * time.Second
}
