package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const fullPage = `<html>
<head>
<title>Tab Title | AFR</title>
<meta property="og:title" content="Grid Upgrade Approved">
<meta name="twitter:title" content="Twitter Title">
<meta property="og:description" content="The energy regulator approved the upgrade.">
<meta name="description" content="Generic description">
<meta name="author" content="Jane Reporter">
<meta property="article:published_time" content="2026-01-31T09:30:00+11:00">
<meta property="og:image:secure_url" content="https://img.afr.com/story/hero.jpg">
<meta property="og:image" content="https://img.afr.com/story/other.jpg">
</head>
<body>
<article>
<p>Short para.</p>
<p>The energy regulator has formally approved the long-delayed transmission upgrade after years of consultation.</p>
<p>Construction is expected to begin in the second half of the year, the operator said on Friday morning.</p>
<img src="/images/inline.jpg">
</article>
</body>
</html>`

func TestExtractFullPage(t *testing.T) {
	t.Parallel()

	draft, err := New().Extract("https://www.afr.com/companies/energy/grid-upgrade-20260131-p5fabc", []byte(fullPage))
	require.NoError(t, err)

	require.Equal(t, "Grid Upgrade Approved", draft.Title)
	require.Equal(t, "The energy regulator approved the upgrade.", draft.Description)
	require.Equal(t, "Jane Reporter", draft.Author)
	require.Equal(t, "2026-01-31T09:30:00+11:00", draft.PublishedAt)
	require.Equal(t, "https://img.afr.com/story/hero.jpg", draft.ImageURL)
	require.Equal(t,
		"The energy regulator has formally approved the long-delayed transmission upgrade after years of consultation."+
			"\n\n"+
			"Construction is expected to begin in the second half of the year, the operator said on Friday morning.",
		draft.Excerpt)
}

func TestExtractTitleFallbackChain(t *testing.T) {
	t.Parallel()

	e := New()

	twitterOnly := `<html><head><meta name="twitter:title" content="From Twitter"></head><body></body></html>`
	draft, err := e.Extract("https://www.afr.com/x/y/z-20260131", []byte(twitterOnly))
	require.NoError(t, err)
	require.Equal(t, "From Twitter", draft.Title)

	titleElementOnly := `<html><head><title>  Element Title  </title></head><body></body></html>`
	draft, err = e.Extract("https://www.afr.com/x/y/z-20260131", []byte(titleElementOnly))
	require.NoError(t, err)
	require.Equal(t, "Element Title", draft.Title)

	bare := `<html><head></head><body></body></html>`
	draft, err = e.Extract("https://x.com/some-cool-story-20260101-p5aaaa", []byte(bare))
	require.NoError(t, err)
	require.Equal(t, "Some Cool Story 20260101 P5Aaaa", draft.Title)
}

func TestTitleFromURL(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Some Cool Story 20260101 P5Aaaa",
		TitleFromURL("https://x.com/some-cool-story-20260101-p5aaaa"))
	require.Equal(t, "Mixed Case Slug",
		TitleFromURL("https://x.com/a/MIXED_case-slug/"))
}

func TestPickImageRejectsBadCandidates(t *testing.T) {
	t.Parallel()

	html := `<html><head>
<meta property="og:image:secure_url" content="https://img.afr.com/assets/favicon-large.png">
<meta property="og:image" content="//img.afr.com/story/real.png">
</head><body></body></html>`

	draft, err := New().Extract("https://www.afr.com/a/b/c-20260131", []byte(html))
	require.NoError(t, err)
	require.Equal(t, "https://img.afr.com/story/real.png", draft.ImageURL)
}

func TestPickImageResolvesRelativeAndSkipsDataURI(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<article>
<img src="data:image/gif;base64,R0lGOD">
<img data-src="/images/lazy-hero.jpg">
</article>
</body></html>`

	draft, err := New().Extract("https://www.afr.com/a/b/c-20260131", []byte(html))
	require.NoError(t, err)
	require.Equal(t, "https://www.afr.com/images/lazy-hero.jpg", draft.ImageURL)
}

func TestPickImageEmptyWhenAllRejected(t *testing.T) {
	t.Parallel()

	html := `<html><head>
<meta property="og:image" content="https://img.afr.com/brand/logo.png">
</head><body></body></html>`

	draft, err := New().Extract("https://www.afr.com/a/b/c-20260131", []byte(html))
	require.NoError(t, err)
	require.Empty(t, draft.ImageURL)
}

func TestExcerptFiltersShortParagraphsAndCapsAtFive(t *testing.T) {
	t.Parallel()

	html := `<html><body>`
	long := "<p>This paragraph is comfortably longer than sixty characters so it will survive the filter %d.</p>"
	html += `<p>caption</p>`
	for i := 1; i <= 7; i++ {
		html += fmt.Sprintf(long, i)
	}
	html += `</body></html>`

	draft, err := New().Extract("https://www.afr.com/a/b/c-20260131", []byte(html))
	require.NoError(t, err)

	paragraphs := strings.Split(draft.Excerpt, "\n\n")
	require.Len(t, paragraphs, 5)
	require.Contains(t, paragraphs[0], "survive the filter 1")
	require.Contains(t, paragraphs[4], "survive the filter 5")
}
