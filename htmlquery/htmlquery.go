// Package htmlquery implements site-layout edition extraction strategies
// whose patterns are XPath expressions, using github.com/antchfx/htmlquery.
package htmlquery

import (
	"context"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/fwojciec/epaper"
	"golang.org/x/net/html"
)

// parse returns the root node of the page content.
func parse(ctx context.Context, page *epaper.Page) (*html.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := htmlquery.Parse(strings.NewReader(page.Content()))
	if err != nil {
		return nil, epaper.Errorf(epaper.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// queryAll returns the nodes matching expr under top.
func queryAll(top *html.Node, expr string) ([]*html.Node, error) {
	nodes, err := htmlquery.QueryAll(top, expr)
	if err != nil {
		return nil, epaper.Errorf(epaper.EINVALID, "invalid XPath %q: %v", expr, err)
	}
	return nodes, nil
}

// query returns the first node matching expr under top, or nil.
func query(top *html.Node, expr string) (*html.Node, error) {
	node, err := htmlquery.Query(top, expr)
	if err != nil {
		return nil, epaper.Errorf(epaper.EINVALID, "invalid XPath %q: %v", expr, err)
	}
	return node, nil
}

// text returns the trimmed inner text of n.
func text(n *html.Node) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(htmlquery.InnerText(n))
}

// href returns the trimmed href of n, or "" for non-HTTP links.
func href(n *html.Node) string {
	if n == nil {
		return ""
	}
	return attr(n, "href")
}

// attr returns the trimmed value of the named attribute, or "" for values
// that are not fetchable links.
func attr(n *html.Node, name string) string {
	v := strings.TrimSpace(htmlquery.SelectAttr(n, name))
	if v == "#" {
		return ""
	}
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(strings.ToLower(v), scheme) {
			return ""
		}
	}
	return v
}
