// Package extract derives article metadata from fetched page markup.
//
// Every field is resolved through an ordered fallback chain over the page's
// structured signals (social-preview metadata, generic meta tags) and, last,
// unstructured content (title element, URL slug, paragraph text). Chains stop
// at the first non-empty candidate and never fabricate values.
package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dailydigest/newscrawler/internal/pipeline"
)

// minParagraphLen filters out captions, bylines and other boilerplate when
// building the body excerpt.
const minParagraphLen = 60

// maxExcerptParagraphs bounds the body excerpt.
const maxExcerptParagraphs = 5

// badImageTokens mark decorative or placeholder images that must never be
// used as the article image.
var badImageTokens = []string{
	"logo",
	"icon",
	"sprite",
	"favicon",
	"placeholder",
	"spacer",
	"data:image",
}

// imageMetaFields are the structured image sources, in preference order.
var imageMetaFields = []struct {
	attr string
	name string
}{
	{"property", "og:image:secure_url"},
	{"property", "og:image"},
	{"property", "og:image:url"},
	{"name", "twitter:image"},
	{"name", "twitter:image:src"},
}

// Extractor parses article pages into metadata drafts.
type Extractor struct{}

// New builds an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract parses the page and resolves every draft field through its
// fallback chain. The returned draft always has a non-empty Title.
func (e *Extractor) Extract(pageURL string, body []byte) (pipeline.Draft, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return pipeline.Draft{}, fmt.Errorf("parse article page: %w", err)
	}

	title := meta(doc, "property", "og:title")
	if title == "" {
		title = meta(doc, "name", "twitter:title")
	}
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if title == "" {
		title = TitleFromURL(pageURL)
	}

	description := meta(doc, "property", "og:description")
	if description == "" {
		description = meta(doc, "name", "description")
	}

	author := meta(doc, "name", "author")
	if author == "" {
		author = meta(doc, "property", "article:author")
	}

	return pipeline.Draft{
		Title:       title,
		Description: description,
		ImageURL:    pickImageURL(doc, pageURL),
		Author:      author,
		PublishedAt: meta(doc, "property", "article:published_time"),
		Excerpt:     excerpt(doc),
	}, nil
}

// meta returns the trimmed content of the first matching meta tag.
func meta(doc *goquery.Document, attr, name string) string {
	sel := fmt.Sprintf("meta[%s='%s']", attr, name)
	content, _ := doc.Find(sel).First().Attr("content")
	return strings.TrimSpace(content)
}

// pickImageURL returns the first normalized, non-rejected candidate among
// the ordered metadata fields and the images nested under article, figure
// and main containers.
func pickImageURL(doc *goquery.Document, pageURL string) string {
	var candidates []string
	for _, field := range imageMetaFields {
		if v := meta(doc, field.attr, field.name); v != "" {
			candidates = append(candidates, v)
		}
	}

	doc.Find("article img, figure img, main img").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok || src == "" {
			src, _ = s.Attr("data-src")
		}
		if src == "" {
			src, _ = s.Attr("data-original")
		}
		if src != "" {
			candidates = append(candidates, src)
		}
	})

	seen := make(map[string]struct{}, len(candidates))
	for _, raw := range candidates {
		normalized := normalizeImageURL(raw, pageURL)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		if isBadImageURL(normalized) {
			continue
		}
		return normalized
	}
	return ""
}

// normalizeImageURL upgrades protocol-relative URLs to HTTPS and resolves
// relative references against the page URL.
func normalizeImageURL(raw, pageURL string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func isBadImageURL(u string) bool {
	lowered := strings.ToLower(u)
	for _, token := range badImageTokens {
		if strings.Contains(lowered, token) {
			return true
		}
	}
	return false
}

// excerpt joins the first paragraphs long enough to be body text, separated
// by blank lines.
func excerpt(doc *goquery.Document) string {
	var paragraphs []string
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if len(text) > minParagraphLen {
			paragraphs = append(paragraphs, text)
		}
		return len(paragraphs) < maxExcerptParagraphs
	})
	return strings.Join(paragraphs, "\n\n")
}

// TitleFromURL synthesizes a headline from the URL slug: hyphens and
// underscores become spaces and each word is title-cased.
func TitleFromURL(rawURL string) string {
	path := rawURL
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimRight(path, "/")
	slug := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		slug = path[i+1:]
	}
	slug = strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return titleCase(slug)
}

// titleCase uppercases every letter that follows a non-letter and
// lowercases the rest, matching the conventional headline casing of slugs
// ("some-story-p5aaaa" -> "Some Story P5Aaaa").
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		isLetter := ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
		switch {
		case isLetter && !prevLetter:
			if 'a' <= r && r <= 'z' {
				r -= 'a' - 'A'
			}
		case isLetter && prevLetter:
			if 'A' <= r && r <= 'Z' {
				r += 'a' - 'A'
			}
		}
		b.WriteRune(r)
		prevLetter = isLetter
	}
	return b.String()
}
