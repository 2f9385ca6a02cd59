// Package harvest selects candidate article URLs from listing pages.
package harvest

import (
	"regexp"
	"strings"
)

var (
	// Dated slugs end in a run of digits, e.g. .../some-headline-20260131.
	datedSlugPattern = regexp.MustCompile(`[0-9]{6}$`)
	// Some URL shapes carry the year as a path segment instead.
	yearPathPattern = regexp.MustCompile(`/20\d{2}/`)
	// The publisher's internal article-id suffix, e.g. .../headline-p5fabc.
	articleIDPattern = regexp.MustCompile(`(?i)-p[0-9a-z]{4,}$`)
)

// IsLikelyArticle reports whether a URL looks like a news article rather
// than a section, index or login page. Pure string heuristics; no I/O.
func IsLikelyArticle(rawURL string) bool {
	path := pathOf(rawURL)
	slug := slugOf(rawURL)
	if datedSlugPattern.MatchString(slug) {
		return true
	}
	if yearPathPattern.MatchString(path) {
		return true
	}
	return articleIDPattern.MatchString(slug)
}

// pathOf strips the query string and any trailing slash.
func pathOf(rawURL string) string {
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		rawURL = rawURL[:i]
	}
	return strings.TrimRight(rawURL, "/")
}

// slugOf returns the final path segment of a URL.
func slugOf(rawURL string) string {
	path := pathOf(rawURL)
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
