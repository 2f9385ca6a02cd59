package harvest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestHarvester(maxArticles int) *Harvester {
	return New(Config{
		Origin:      "https://www.afr.com",
		Domain:      "afr.com",
		MaxArticles: maxArticles,
	}, nil)
}

func page(links ...string) []byte {
	html := "<html><body>"
	for _, l := range links {
		html += fmt.Sprintf(`<a href="%s">link</a>`, l)
	}
	return []byte(html + "</body></html>")
}

func TestHarvestPrimarySelection(t *testing.T) {
	t.Parallel()

	h := newTestHarvester(10)
	body := page(
		"/companies/energy/grid-upgrade-20260131-p5fabc",
		"https://www.afr.com/markets/equities/asx-wrap-20260130-p5fabd",
		"//www.afr.com/policy/tax/gst-review-20260129-p5fabe",
		"https://www.afr.com/companies",                       // too few segments
		"https://example.com/world/offsite-story-20260131",    // off-site
		"https://www.afr.com/static/banner-20260131-p5xxxx",   // static path
		"https://www.afr.com/companies/style-20260131.css",    // asset extension
		"https://www.afr.com/subscribe/offers-20260131-p5yyyy", // subscribe
		"mailto:tips@afr.com",
	)

	links, err := h.Harvest("https://www.afr.com/", body)
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://www.afr.com/companies/energy/grid-upgrade-20260131-p5fabc",
		"https://www.afr.com/markets/equities/asx-wrap-20260130-p5fabd",
		"https://www.afr.com/policy/tax/gst-review-20260129-p5fabe",
	}, links)
}

func TestHarvestDeduplicatesAndCaps(t *testing.T) {
	t.Parallel()

	h := newTestHarvester(2)
	body := page(
		"/companies/energy/story-one-20260131-p5aaaa",
		"/companies/energy/story-one-20260131-p5aaaa",
		"/companies/energy/story-two-20260131-p5bbbb",
		"/companies/energy/story-three-20260131-p5cccc",
	)

	links, err := h.Harvest("https://www.afr.com/", body)
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://www.afr.com/companies/energy/story-one-20260131-p5aaaa",
		"https://www.afr.com/companies/energy/story-two-20260131-p5bbbb",
	}, links)
}

func TestHarvestFallbackOnlyWhenPrimaryEmpty(t *testing.T) {
	t.Parallel()

	h := newTestHarvester(10)

	// No link matches the article-shape heuristics; one long slug outside
	// the excluded sections qualifies for the fallback.
	body := page(
		"/brand/features/a-very-long-seasonal-feature-slug",
		"/companies/energy/short",
		"/markets/equities/another-extremely-long-index-slug", // excluded section
	)
	links, err := h.Harvest("https://www.afr.com/", body)
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://www.afr.com/brand/features/a-very-long-seasonal-feature-slug",
	}, links)
}

func TestHarvestNeverBlendsFallbackIntoPrimary(t *testing.T) {
	t.Parallel()

	h := newTestHarvester(10)
	body := page(
		"/companies/energy/real-article-20260131-p5fabc",
		"/brand/features/a-very-long-seasonal-feature-slug",
	)

	links, err := h.Harvest("https://www.afr.com/", body)
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://www.afr.com/companies/energy/real-article-20260131-p5fabc",
	}, links)
}

func TestHarvestEmptyPage(t *testing.T) {
	t.Parallel()

	h := newTestHarvester(10)
	links, err := h.Harvest("https://www.afr.com/", []byte("<html><body></body></html>"))
	require.NoError(t, err)
	require.Empty(t, links)
}
