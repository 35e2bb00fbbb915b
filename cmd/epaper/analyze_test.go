package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/epaper"
	"github.com/fwojciec/epaper/analyze"
	main "github.com/fwojciec/epaper/cmd/epaper"
	"github.com/fwojciec/epaper/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticAnalyzer(page *epaper.Page, editions *epaper.EditionMapping) *analyze.Analyzer {
	return &analyze.Analyzer{
		Resolver: &mock.Resolver{
			ResolveFn: func(context.Context, string) (*epaper.Page, error) {
				return page, nil
			},
		},
		Strategies: []epaper.Strategy{
			&mock.Strategy{
				NameFn: func() string { return "extension" },
				ExtractFn: func(context.Context, *epaper.Page) (*epaper.EditionMapping, error) {
					return editions, nil
				},
			},
		},
	}
}

func TestAnalyzeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints editions in page order", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runner: staticAnalyzer(epaper.NewPage("<html></html>", "http://x.com/"), twoEditions()),
		}

		err := (&main.AnalyzeCmd{URL: "http://x.com/"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "A01\thttp://x.com/a01.pdf\nA02\thttp://x.com/a02.pdf\n", stdout.String())
	})

	t.Run("prints JSON object preserving order", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runner: staticAnalyzer(epaper.NewPage("<html></html>", "http://x.com/"), twoEditions()),
		}

		err := (&main.AnalyzeCmd{URL: "http://x.com/", JSON: true}).Run(deps)

		require.NoError(t, err)
		assert.JSONEq(t, `{"A01":"http://x.com/a01.pdf","A02":"http://x.com/a02.pdf"}`, stdout.String())
		assert.Less(t, bytes.Index(stdout.Bytes(), []byte("A01")), bytes.Index(stdout.Bytes(), []byte("A02")))
	})

	t.Run("explains redirects and strategy counts", func(t *testing.T) {
		t.Parallel()

		page := epaper.NewPage("<html></html>", "http://x.com/paper/",
			epaper.RedirectHop{Source: "http://x.com/", Target: "http://x.com/paper/", Mechanism: epaper.RedirectMetaRefresh})

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Runner: staticAnalyzer(page, twoEditions()),
		}

		err := (&main.AnalyzeCmd{URL: "http://x.com/", Explain: true}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "http://x.com/ -> http://x.com/paper/")
		assert.Contains(t, stderr.String(), "extension")
		assert.Contains(t, stderr.String(), "winner: extension")
	})

	t.Run("falls back to page markdown when nothing is found", func(t *testing.T) {
		t.Parallel()

		page := epaper.NewPage("<p>Closed today</p>", "http://x.com/")
		var converted *epaper.Page

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Runner: staticAnalyzer(page, epaper.NewEditionMapping()),
			Converter: &mock.Converter{
				ConvertPageFn: func(p *epaper.Page) (string, error) {
					converted = p
					return "Closed today", nil
				},
			},
		}

		err := (&main.AnalyzeCmd{URL: "http://x.com/"}).Run(deps)

		require.NoError(t, err)
		assert.Same(t, page, converted)
		assert.Contains(t, stdout.String(), "Closed today")
		assert.Contains(t, stderr.String(), "No editions found")
	})

	t.Run("prints empty JSON object when nothing is found", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runner: staticAnalyzer(epaper.NewPage("<html></html>", "http://x.com/"), epaper.NewEditionMapping()),
		}

		err := (&main.AnalyzeCmd{URL: "http://x.com/", JSON: true}).Run(deps)

		require.NoError(t, err)
		assert.JSONEq(t, `{}`, stdout.String())
	})

	t.Run("returns resolver errors", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Runner: &analyze.Analyzer{
				Resolver: &mock.Resolver{
					ResolveFn: func(_ context.Context, url string) (*epaper.Page, error) {
						return nil, epaper.Errorf(epaper.ELOOP, "redirect chain from %s exceeds 5 hops", url)
					},
				},
			},
		}

		err := (&main.AnalyzeCmd{URL: "http://x.com/"}).Run(deps)

		assert.Equal(t, epaper.ELOOP, epaper.ErrorCode(err))
		assert.Contains(t, stderr.String(), "redirect chain")
	})
}
