// Package pipeline defines core types shared across subsystems.
package pipeline

import (
	"strings"
	"time"
)

// Category labels an article with one entry from the fixed taxonomy the
// backend understands.
type Category string

// Categories accepted by the backend.
const (
	CategoryTechnology    Category = "Technology"
	CategoryBusiness      Category = "Business"
	CategorySports        Category = "Sports"
	CategoryHealth        Category = "Health"
	CategoryScience       Category = "Science"
	CategoryEntertainment Category = "Entertainment"
	CategoryPolitics      Category = "Politics"
	CategoryWorld         Category = "World"
)

// DefaultCategory is used when classification cannot decide.
const DefaultCategory = CategoryBusiness

// AllowedCategories lists every valid category in prompt order.
var AllowedCategories = []Category{
	CategoryTechnology,
	CategoryBusiness,
	CategorySports,
	CategoryHealth,
	CategoryScience,
	CategoryEntertainment,
	CategoryPolitics,
	CategoryWorld,
}

// ParseCategory matches s against the allowed set, case-insensitively,
// returning the canonical value. ok is false when s is not a known category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range AllowedCategories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

// Article is the canonical record upserted into the content store.
// Every field is always present in the JSON payload; imageUrl, author and
// publishedAt may be empty strings.
type Article struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	ImageURL    string   `json:"imageUrl"`
	Source      string   `json:"source"`
	Category    Category `json:"category"`
	Author      string   `json:"author"`
	PublishedAt string   `json:"publishedAt"`
	URL         string   `json:"url"`
}

// Draft holds the metadata extracted from an article page before
// enrichment and assembly. Any field may be empty except Title, which the
// extractor always backfills from the URL slug.
type Draft struct {
	Title       string
	Description string
	ImageURL    string
	Author      string
	PublishedAt string
	Excerpt     string
}

// RunReport summarizes one completed batch run.
type RunReport struct {
	RunID      string        `json:"run_id"`
	LinksFound int           `json:"links_found"`
	Published  int           `json:"published"`
	Failed     int           `json:"failed"`
	Duration   time.Duration `json:"duration"`
}
