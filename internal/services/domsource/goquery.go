// Package domsource implements interfaces.DOMHandle against static HTML
// (goquery) and a live browser (chromedp).
package domsource

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/inkwell/internal/interfaces"
)

// goqueryElement adapts a single *goquery.Selection match to
// interfaces.DOMElement.
type goqueryElement struct {
	sel *goquery.Selection
}

func (e goqueryElement) TextContent() string {
	return strings.TrimSpace(e.sel.Text())
}

func (e goqueryElement) OuterHTML() string {
	html, err := goquery.OuterHtml(e.sel)
	if err != nil {
		return ""
	}
	return html
}

func (e goqueryElement) GetAttribute(name string) (string, bool) {
	return e.sel.Attr(name)
}

// StaticDOM implements interfaces.DOMHandle over a parsed, static HTML
// document. It never fetches or re-navigates: the document is whatever the
// caller parsed once at PageContext construction time.
type StaticDOM struct {
	doc *goquery.Document
}

// NewStaticDOM parses html into a StaticDOM. A parse failure yields a
// handle whose queries always return zero matches, matching the selector
// adapter's "malformed input degrades to empty" rule.
func NewStaticDOM(html string) *StaticDOM {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return &StaticDOM{}
	}
	return &StaticDOM{doc: doc}
}

func (d *StaticDOM) QuerySelectorAll(selector string) []interfaces.DOMElement {
	if d == nil || d.doc == nil {
		return nil
	}
	sel := d.doc.Find(selector)
	out := make([]interfaces.DOMElement, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, goqueryElement{sel: s})
	})
	return out
}
