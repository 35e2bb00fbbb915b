package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/epaper"
	"github.com/fwojciec/epaper/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements epaper.Converter at compile time.
var _ epaper.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_ConvertPage(t *testing.T) {
	t.Parallel()

	convert := func(t *testing.T, html, base string) string {
		t.Helper()
		md, err := htmltomarkdown.NewConverter().ConvertPage(epaper.NewPage(html, base))
		require.NoError(t, err)
		return md
	}

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		md := convert(t, `<h1>日报</h1><h2>第01版</h2><p>要闻速览</p>`, "http://x.com/")

		assert.Contains(t, md, "# 日报")
		assert.Contains(t, md, "## 第01版")
		assert.Contains(t, md, "要闻速览")
	})

	t.Run("makes links absolute against page base", func(t *testing.T) {
		t.Parallel()

		md := convert(t, `<p><a href="/paper/a.html">Today</a></p>`, "http://x.com/index.html")

		assert.Contains(t, md, "[Today](http://x.com/paper/a.html)")
	})

	t.Run("keeps absolute links", func(t *testing.T) {
		t.Parallel()

		md := convert(t, `<p><a href="https://cdn.y.com/1.pdf">PDF</a></p>`, "http://x.com/")

		assert.Contains(t, md, "[PDF](https://cdn.y.com/1.pdf)")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		md := convert(t, `<table><thead><tr><th>版次</th><th>标题</th></tr></thead><tbody><tr><td>A01</td><td>要闻</td></tr></tbody></table>`, "http://x.com/")

		assert.Contains(t, md, "版次")
		assert.Contains(t, md, "要闻")
		assert.Contains(t, md, "|")
	})

	t.Run("drops scripts", func(t *testing.T) {
		t.Parallel()

		md := convert(t, `<p>Visible</p><script>var hidden = 1;</script>`, "http://x.com/")

		assert.Contains(t, md, "Visible")
		assert.NotContains(t, md, "hidden")
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		md := convert(t, "\n\n<p>Body</p>\n\n", "http://x.com/")

		assert.Equal(t, "Body", md)
	})

	t.Run("returns error for empty page", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().ConvertPage(epaper.NewPage("", "http://x.com/"))

		assert.Equal(t, epaper.EINVALID, epaper.ErrorCode(err))
	})

	t.Run("returns error for whitespace-only page", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().ConvertPage(epaper.NewPage("  \n\t", "http://x.com/"))

		assert.Equal(t, epaper.EINVALID, epaper.ErrorCode(err))
	})
}
