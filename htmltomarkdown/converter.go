// Package htmltomarkdown renders pages as Markdown. It is used to show the
// raw content of a newspaper page when no editions can be extracted.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/epaper"
)

// Ensure Converter implements epaper.Converter at compile time.
var _ epaper.Converter = (*Converter)(nil)

// Converter renders pages with html-to-markdown using the CommonMark and
// table plugins.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// ConvertPage transforms the page content into Markdown with links made
// absolute against the page's base URL.
func (c *Converter) ConvertPage(page *epaper.Page) (string, error) {
	if strings.TrimSpace(page.Content()) == "" {
		return "", epaper.Errorf(epaper.EINVALID, "page %s is empty", page.BaseURL())
	}

	result, err := c.conv.ConvertString(page.Content(), converter.WithDomain(page.BaseURL()))
	if err != nil {
		return "", epaper.Wrapf(err, epaper.EINTERNAL, "convert page %s", page.BaseURL())
	}

	return strings.TrimSpace(result), nil
}
