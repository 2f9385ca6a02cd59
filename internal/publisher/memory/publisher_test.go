package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dailydigest/newscrawler/internal/pipeline"
)

func TestUpsertRecordsArticles(t *testing.T) {
	t.Parallel()

	p := New()
	require.NoError(t, p.Upsert(context.Background(), pipeline.Article{URL: "https://site/a"}))
	require.NoError(t, p.Upsert(context.Background(), pipeline.Article{URL: "https://site/b"}))

	articles := p.Articles()
	require.Len(t, articles, 2)
	require.Equal(t, "https://site/a", articles[0].URL)
	require.Equal(t, "https://site/b", articles[1].URL)
}

func TestUpsertIsSafeForConcurrentUse(t *testing.T) {
	t.Parallel()

	p := New()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = p.Upsert(context.Background(), pipeline.Article{URL: fmt.Sprintf("https://site/%d", i)})
		}(i)
	}
	wg.Wait()

	require.Len(t, p.Articles(), 10)
}
