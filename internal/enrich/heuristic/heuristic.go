// Package heuristic implements enrichment without any external service.
package heuristic

import (
	"context"
	"regexp"
	"strings"

	"github.com/dailydigest/newscrawler/internal/pipeline"
)

// keywordGroups map category-indicative keywords to categories, checked in
// fixed priority order. First match wins.
var keywordGroups = []struct {
	category pipeline.Category
	pattern  *regexp.Regexp
}{
	{pipeline.CategoryTechnology, regexp.MustCompile(`\b(ai|chip|apple|google|microsoft|cyber|software|startup|tech)\b`)},
	{pipeline.CategoryBusiness, regexp.MustCompile(`\b(stock|market|asx|profit|earnings|rates|bank|economy|inflation)\b`)},
	{pipeline.CategorySports, regexp.MustCompile(`\b(match|league|tournament|championship|soccer|football|cricket|tennis)\b`)},
	{pipeline.CategoryHealth, regexp.MustCompile(`\b(health|hospital|cancer|vaccine|disease|medical)\b`)},
	{pipeline.CategoryScience, regexp.MustCompile(`\b(science|research|space|telescope|climate|biology|physics)\b`)},
	{pipeline.CategoryEntertainment, regexp.MustCompile(`\b(movie|music|streaming|celebrity|entertainment)\b`)},
	{pipeline.CategoryPolitics, regexp.MustCompile(`\b(election|government|parliament|policy|minister|politics)\b`)},
}

// Enricher is the local, deterministic enrichment fallback. It produces no
// summary and classifies by keyword scan; neither operation can fail.
type Enricher struct{}

// New builds a heuristic Enricher.
func New() *Enricher {
	return &Enricher{}
}

// Summarize returns an empty summary: there is no local substitute for
// generated prose, and consumers treat an empty summary as "absent".
func (e *Enricher) Summarize(context.Context, string, string) (string, error) {
	return "", nil
}

// Classify scans the concatenated text for category-indicative keywords in
// priority order, defaulting to Business when nothing matches.
func (e *Enricher) Classify(_ context.Context, title, description, content string) (pipeline.Category, error) {
	text := strings.ToLower(title + " " + description + " " + content)
	for _, group := range keywordGroups {
		if group.pattern.MatchString(text) {
			return group.category, nil
		}
	}
	return pipeline.DefaultCategory, nil
}
