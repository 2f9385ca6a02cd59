package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dailydigest/newscrawler/internal/pipeline"
)

type fakeEnricher struct {
	summary     string
	summaryErr  error
	category    pipeline.Category
	categoryErr error

	summarizeCalls int
	classifyCalls  int
}

func (f *fakeEnricher) Summarize(context.Context, string, string) (string, error) {
	f.summarizeCalls++
	return f.summary, f.summaryErr
}

func (f *fakeEnricher) Classify(context.Context, string, string, string) (pipeline.Category, error) {
	f.classifyCalls++
	return f.category, f.categoryErr
}

func TestFallbackPrefersLive(t *testing.T) {
	t.Parallel()

	live := &fakeEnricher{summary: "live summary", category: pipeline.CategoryScience}
	local := &fakeEnricher{summary: "local summary", category: pipeline.CategoryBusiness}
	f := NewFallback(live, local, nil)

	summary, err := f.Summarize(context.Background(), "t", "c")
	require.NoError(t, err)
	require.Equal(t, "live summary", summary)

	category, err := f.Classify(context.Background(), "t", "d", "c")
	require.NoError(t, err)
	require.Equal(t, pipeline.CategoryScience, category)

	require.Zero(t, local.summarizeCalls)
	require.Zero(t, local.classifyCalls)
}

func TestFallbackDowngradesOnLiveError(t *testing.T) {
	t.Parallel()

	live := &fakeEnricher{
		summaryErr:  errors.New("connection refused"),
		categoryErr: errors.New("connection refused"),
	}
	local := &fakeEnricher{category: pipeline.CategoryPolitics}
	f := NewFallback(live, local, nil)

	summary, err := f.Summarize(context.Background(), "t", "c")
	require.NoError(t, err)
	require.Empty(t, summary)

	category, err := f.Classify(context.Background(), "t", "d", "c")
	require.NoError(t, err)
	require.Equal(t, pipeline.CategoryPolitics, category)
}

func TestFallbackDowngradesOnEmptyLiveCategory(t *testing.T) {
	t.Parallel()

	live := &fakeEnricher{category: ""}
	local := &fakeEnricher{category: pipeline.CategoryHealth}
	f := NewFallback(live, local, nil)

	category, err := f.Classify(context.Background(), "t", "d", "c")
	require.NoError(t, err)
	require.Equal(t, pipeline.CategoryHealth, category)
}

func TestFallbackWithoutLive(t *testing.T) {
	t.Parallel()

	local := &fakeEnricher{summary: "local summary", category: pipeline.CategoryWorld}
	f := NewFallback(nil, local, nil)

	summary, err := f.Summarize(context.Background(), "t", "c")
	require.NoError(t, err)
	require.Equal(t, "local summary", summary)

	category, err := f.Classify(context.Background(), "t", "d", "c")
	require.NoError(t, err)
	require.Equal(t, pipeline.CategoryWorld, category)
}
