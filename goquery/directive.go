package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var refreshURLPrefix = regexp.MustCompile(`(?i)^url\s*=\s*`)

// RefreshTarget returns the unresolved target of the first meta refresh
// directive in html, or "" when the page has none.
//
// The content attribute is split on the first ';'. A directive without a
// second part, such as content="30", is a plain reload and has no target.
// A leading "URL=" and surrounding quotes are removed from the target.
func RefreshTarget(html string) string {
	doc, err := parse(html)
	if err != nil {
		return ""
	}

	var content string
	var found bool
	doc.Find("meta[http-equiv]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		equiv, _ := sel.Attr("http-equiv")
		if !strings.EqualFold(strings.TrimSpace(equiv), "refresh") {
			return true
		}
		content, found = sel.Attr("content")
		return false
	})
	if !found {
		return ""
	}

	_, target, ok := strings.Cut(content, ";")
	if !ok {
		return ""
	}
	target = strings.TrimSpace(target)
	target = refreshURLPrefix.ReplaceAllString(target, "")
	return strings.Trim(strings.TrimSpace(target), `"'`)
}

// ScriptTexts returns the text of every script element in document order.
func ScriptTexts(html string) []string {
	doc, err := parse(html)
	if err != nil {
		return nil
	}

	var texts []string
	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		if text := sel.Text(); strings.TrimSpace(text) != "" {
			texts = append(texts, text)
		}
	})
	return texts
}
