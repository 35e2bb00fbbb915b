package analyze_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/epaper"
	"github.com/fwojciec/epaper/analyze"
	"github.com/fwojciec/epaper/mock"
	"github.com/fwojciec/epaper/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticResolver(html string) *mock.Resolver {
	return &mock.Resolver{
		ResolveFn: func(ctx context.Context, url string) (*epaper.Page, error) {
			return epaper.NewPage(html, url), nil
		},
	}
}

func mapping(n int, prefix string) *epaper.EditionMapping {
	m := epaper.NewEditionMapping()
	for i := range n {
		m.Add(fmt.Sprintf("%s%d", prefix, i), fmt.Sprintf("http://x.com/%s%d.pdf", prefix, i))
	}
	return m
}

func fixed(name string, m *epaper.EditionMapping) *mock.Strategy {
	return &mock.Strategy{
		NameFn: func() string { return name },
		ExtractFn: func(ctx context.Context, page *epaper.Page) (*epaper.EditionMapping, error) {
			return m, nil
		},
	}
}

func TestAnalyzer_Run(t *testing.T) {
	t.Parallel()

	t.Run("selects mapping with most entries", func(t *testing.T) {
		t.Parallel()

		a := &analyze.Analyzer{
			Resolver: staticResolver("<html></html>"),
			Strategies: []epaper.Strategy{
				fixed("first", mapping(3, "a")),
				fixed("second", mapping(7, "b")),
			},
		}

		result, err := a.Run(context.Background(), "http://x.com/")

		require.NoError(t, err)
		assert.Equal(t, "second", result.Strategy)
		assert.Equal(t, 7, result.Editions.Len())
		assert.Equal(t, map[string]int{"first": 3, "second": 7}, result.Counts)
		assert.False(t, result.Partial)
	})

	t.Run("ties go to earliest strategy", func(t *testing.T) {
		t.Parallel()

		a := &analyze.Analyzer{
			Resolver: staticResolver("<html></html>"),
			Strategies: []epaper.Strategy{
				fixed("empty", epaper.NewEditionMapping()),
				fixed("early", mapping(4, "a")),
				fixed("late", mapping(4, "b")),
			},
		}

		result, err := a.Run(context.Background(), "http://x.com/")

		require.NoError(t, err)
		assert.Equal(t, "early", result.Strategy)
		assert.Equal(t, "a0", result.Editions.Titles()[0])
	})

	t.Run("failing and panicking strategies count as empty", func(t *testing.T) {
		t.Parallel()

		a := &analyze.Analyzer{
			Resolver: staticResolver("<html></html>"),
			Strategies: []epaper.Strategy{
				&mock.Strategy{
					NameFn: func() string { return "fails" },
					ExtractFn: func(ctx context.Context, page *epaper.Page) (*epaper.EditionMapping, error) {
						return mapping(9, "x"), epaper.Errorf(epaper.EINVALID, "bad pattern")
					},
				},
				&mock.Strategy{
					NameFn: func() string { return "panics" },
					ExtractFn: func(ctx context.Context, page *epaper.Page) (*epaper.EditionMapping, error) {
						panic("boom")
					},
				},
				&mock.Strategy{
					NameFn: func() string { return "nil" },
					ExtractFn: func(ctx context.Context, page *epaper.Page) (*epaper.EditionMapping, error) {
						return nil, nil
					},
				},
				fixed("works", mapping(2, "a")),
			},
		}

		result, err := a.Run(context.Background(), "http://x.com/")

		require.NoError(t, err)
		assert.Equal(t, "works", result.Strategy)
		assert.Equal(t, 2, result.Editions.Len())
		assert.Equal(t, 0, result.Counts["fails"])
		assert.Equal(t, 0, result.Counts["panics"])
	})

	t.Run("all empty yields empty mapping without error", func(t *testing.T) {
		t.Parallel()

		a := &analyze.Analyzer{
			Resolver: staticResolver("<html></html>"),
			Strategies: []epaper.Strategy{
				fixed("a", epaper.NewEditionMapping()),
				fixed("b", epaper.NewEditionMapping()),
			},
		}

		editions, err := a.Analyze(context.Background(), "http://x.com/")

		require.NoError(t, err)
		require.NotNil(t, editions)
		assert.Equal(t, 0, editions.Len())
	})

	t.Run("resolver failure aborts analysis", func(t *testing.T) {
		t.Parallel()

		called := false
		a := &analyze.Analyzer{
			Resolver: &mock.Resolver{
				ResolveFn: func(ctx context.Context, url string) (*epaper.Page, error) {
					return nil, epaper.Errorf(epaper.EFETCH, "HTTP 503 for %s", url)
				},
			},
			Strategies: []epaper.Strategy{
				&mock.Strategy{
					NameFn: func() string { return "never" },
					ExtractFn: func(ctx context.Context, page *epaper.Page) (*epaper.EditionMapping, error) {
						called = true
						return nil, nil
					},
				},
			},
		}

		_, err := a.Analyze(context.Background(), "http://x.com/")

		require.Error(t, err)
		assert.Equal(t, epaper.EFETCH, epaper.ErrorCode(err))
		assert.False(t, called)
	})

	t.Run("returns partial result when context ends", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		release := make(chan struct{})
		defer close(release)

		a := &analyze.Analyzer{
			Resolver: staticResolver("<html></html>"),
			Strategies: []epaper.Strategy{
				&mock.Strategy{
					NameFn: func() string { return "slow" },
					ExtractFn: func(ctx context.Context, page *epaper.Page) (*epaper.EditionMapping, error) {
						<-release
						return mapping(10, "s"), nil
					},
				},
				fixed("fast", mapping(2, "f")),
			},
		}

		result, err := a.Run(ctx, "http://x.com/")

		require.NoError(t, err)
		assert.True(t, result.Partial)
		assert.Equal(t, "fast", result.Strategy)
		assert.Equal(t, 2, result.Editions.Len())
		assert.NotContains(t, result.Counts, "slow")
	})

	t.Run("strategies share the resolved page", func(t *testing.T) {
		t.Parallel()

		var seen []string
		ch := make(chan string, 2)
		recorder := func(name string) *mock.Strategy {
			return &mock.Strategy{
				NameFn: func() string { return name },
				ExtractFn: func(ctx context.Context, page *epaper.Page) (*epaper.EditionMapping, error) {
					ch <- page.BaseURL()
					return epaper.NewEditionMapping(), nil
				},
			}
		}
		a := &analyze.Analyzer{
			Resolver: &mock.Resolver{
				ResolveFn: func(ctx context.Context, url string) (*epaper.Page, error) {
					return epaper.NewPage("", "http://x.com/final"), nil
				},
			},
			Strategies: []epaper.Strategy{recorder("a"), recorder("b")},
		}

		_, err := a.Run(context.Background(), "http://x.com/")
		require.NoError(t, err)

		seen = append(seen, <-ch, <-ch)
		assert.Equal(t, []string{"http://x.com/final", "http://x.com/final"}, seen)
	})
}

func TestDefaultStrategies(t *testing.T) {
	t.Parallel()

	var names []string
	for _, s := range analyze.DefaultStrategies(nil) {
		names = append(names, s.Name())
	}

	assert.Equal(t, []string{
		"same-page",
		"multi-page",
		"attribute-value",
		"extension",
		"anchor-text",
		"data-attribute",
		"frame",
		"script",
		"container",
	}, names)
}

func TestAnalyzer_EndToEnd(t *testing.T) {
	t.Parallel()

	t.Run("meta refresh to index listing PDF anchors", func(t *testing.T) {
		t.Parallel()

		site := mock.NewSite().
			Page("http://x.com/", `<html><head><meta http-equiv="refresh" content="0;URL=/paper/index.html"></head></html>`).
			Page("http://x.com/paper/index.html", `<html><body>
<a href="a01.pdf">A01 要闻</a>
<a href="a02.pdf">A02 经济</a>
<a href="/about">About</a>
</body></html>`)
		resolver := resolve.NewResolver(site.Fetcher())
		a := &analyze.Analyzer{Resolver: resolver, Strategies: analyze.DefaultStrategies(resolver)}

		result, err := a.Run(context.Background(), "http://x.com/")

		require.NoError(t, err)
		assert.Equal(t, "extension", result.Strategy)
		assert.Equal(t, []string{"A01 要闻", "A02 经济"}, result.Editions.Titles())
		url, _ := result.Editions.Get("A02 经济")
		assert.Equal(t, "http://x.com/paper/a02.pdf", url)
	})

	t.Run("section navigation with per-section PDF pages", func(t *testing.T) {
		t.Parallel()

		site := mock.NewSite().
			Page("http://x.com/html/node_1.htm", `<html><body>
<div id="pageList">
  <a id="pageLink" href="node_1.htm">第01版：要闻</a>
  <a id="pageLink" href="node_2.htm">第02版：评论</a>
  <a id="pageLink" href="node_3.htm">第03版：经济</a>
</div>
<div id="pdf_toolbar"><a href="../pdf/01.pdf">PDF</a></div>
</body></html>`).
			Page("http://x.com/html/node_2.htm", `<div id="pdf_toolbar"><a href="../pdf/02.pdf">PDF</a></div>`).
			Page("http://x.com/html/node_3.htm", `<div id="pdf_toolbar"><a href="../pdf/03.pdf">PDF</a></div>`)
		resolver := resolve.NewResolver(site.Fetcher())
		a := &analyze.Analyzer{Resolver: resolver, Strategies: analyze.DefaultStrategies(resolver)}

		result, err := a.Run(context.Background(), "http://x.com/html/node_1.htm")

		require.NoError(t, err)
		assert.Equal(t, "multi-page", result.Strategy)
		assert.Equal(t, []string{"第01版：要闻", "第02版：评论", "第03版：经济"}, result.Editions.Titles())
		url, _ := result.Editions.Get("第03版：经济")
		assert.Equal(t, "http://x.com/pdf/03.pdf", url)
	})

	t.Run("nothing discoverable", func(t *testing.T) {
		t.Parallel()

		site := mock.NewSite().Page("http://x.com/", `<html><body><p>Welcome</p></body></html>`)
		resolver := resolve.NewResolver(site.Fetcher())
		a := &analyze.Analyzer{Resolver: resolver, Strategies: analyze.DefaultStrategies(resolver)}

		editions, err := a.Analyze(context.Background(), "http://x.com/")

		require.NoError(t, err)
		assert.Equal(t, 0, editions.Len())
	})
}
