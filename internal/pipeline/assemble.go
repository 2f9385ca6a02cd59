package pipeline

// Assemble combines extractor output and enrichment output into the final
// Article record. Pure combination: the description falls back to the
// summary, then the body excerpt, then the title; the content field carries
// the best available body representation (summary, else excerpt, else the
// resolved description).
func Assemble(url, source string, draft Draft, summary string, category Category) Article {
	description := firstNonEmpty(draft.Description, summary, draft.Excerpt, draft.Title)
	content := firstNonEmpty(summary, draft.Excerpt, description)

	return Article{
		Title:       draft.Title,
		Description: description,
		Content:     content,
		ImageURL:    draft.ImageURL,
		Source:      source,
		Category:    category,
		Author:      draft.Author,
		PublishedAt: draft.PublishedAt,
		URL:         url,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
