package harvest

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

var staticAssetPattern = regexp.MustCompile(`(?i)\.(css|js|png|jpe?g|svg|gif|webp)(\?|$)`)

// excludedSegments name section index pages that look article-ish by slug
// length but never are. Only consulted by the fallback pass.
var excludedSegments = []string{
	"/companies/",
	"/markets/",
	"/policy/",
	"/newsfeed/",
	"/topic/",
}

// minFallbackSlugLen is the slug length at which a non-matching URL is still
// worth trying when the precise pass comes up empty.
const minFallbackSlugLen = 15

// Config controls link selection.
type Config struct {
	// Origin is the absolute site origin used to resolve root-relative
	// links, e.g. "https://www.afr.com".
	Origin string
	// Domain rejects links pointing off-site, e.g. "afr.com".
	Domain string
	// MaxArticles caps the number of links returned per listing page.
	MaxArticles int
}

// Harvester extracts and filters candidate article links from listing page
// markup. Selection is two-tier: a precise pass over URLs matching the
// article-shape heuristics, and a recall-oriented fallback used only when
// the precise pass yields nothing. The two result sets are never blended.
type Harvester struct {
	cfg    Config
	logger *zap.Logger
}

// New builds a Harvester.
func New(cfg Config, logger *zap.Logger) *Harvester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Harvester{cfg: cfg, logger: logger}
}

// Harvest returns candidate article URLs from the page, deduplicated in
// first-seen order and capped at MaxArticles.
func (h *Harvester) Harvest(pageURL string, body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href = h.normalize(href); href != "" && h.accept(href) {
			links = append(links, href)
		}
	})

	uniq := dedupe(links)

	primary := make([]string, 0, len(uniq))
	for _, u := range uniq {
		if IsLikelyArticle(u) {
			primary = append(primary, u)
		}
	}
	if len(primary) > 0 {
		return h.cap(primary), nil
	}

	// Precise pass found nothing; trade precision for recall on this page.
	var fallback []string
	for _, u := range uniq {
		if len(slugOf(u)) < minFallbackSlugLen {
			continue
		}
		if containsExcludedSegment(pathOf(u)) {
			continue
		}
		fallback = append(fallback, u)
	}
	if len(fallback) > 0 {
		h.logger.Debug("primary selection empty, using fallback links",
			zap.String("page", pageURL),
			zap.Int("count", len(fallback)),
		)
	}
	return h.cap(fallback), nil
}

// normalize upgrades protocol-relative and root-relative hrefs to absolute
// URLs against the configured origin.
func (h *Harvester) normalize(href string) string {
	href = strings.TrimSpace(href)
	switch {
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return strings.TrimRight(h.cfg.Origin, "/") + href
	default:
		return href
	}
}

// accept applies the structural rejections: off-site targets, static
// assets, subscribe/login paths, and top-level section pages.
func (h *Harvester) accept(href string) bool {
	if !strings.HasPrefix(href, "http") {
		return false
	}
	if !strings.Contains(href, h.cfg.Domain) {
		return false
	}
	if strings.Contains(href, "/static/") {
		return false
	}
	if staticAssetPattern.MatchString(href) {
		return false
	}
	if strings.Contains(href, "/subscribe") || strings.Contains(href, "/login") {
		return false
	}
	// Fewer than 4 slash-separated segments means a top-level section page.
	return strings.Count(href, "/") >= 4
}

func (h *Harvester) cap(links []string) []string {
	if h.cfg.MaxArticles > 0 && len(links) > h.cfg.MaxArticles {
		return links[:h.cfg.MaxArticles]
	}
	return links
}

func containsExcludedSegment(path string) bool {
	for _, seg := range excludedSegments {
		if strings.Contains(path, seg) {
			return true
		}
	}
	return false
}

func dedupe(links []string) []string {
	seen := make(map[string]struct{}, len(links))
	out := make([]string, 0, len(links))
	for _, u := range links {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
