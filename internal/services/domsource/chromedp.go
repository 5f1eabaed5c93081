package domsource

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/ternarybob/inkwell/internal/interfaces"
)

// chromedpElement is an eagerly-captured snapshot of one matched node: its
// text, outer HTML, and attributes, fetched once at query time so later
// reads never re-enter the browser.
type chromedpElement struct {
	text  string
	html  string
	attrs map[string]string
}

func (e chromedpElement) TextContent() string { return strings.TrimSpace(e.text) }
func (e chromedpElement) OuterHTML() string   { return e.html }
func (e chromedpElement) GetAttribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// LiveDOM implements interfaces.DOMHandle against a running headless Chrome
// tab, for pages whose content only exists after script execution.
type LiveDOM struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewLiveDOM launches a headless tab, navigates to url, and waits for the
// body to be ready. The caller must call Close when done with the handle.
func NewLiveDOM(url string, timeout time.Duration) (*LiveDOM, error) {
	allocCtx, allocCancel := chromedp.NewContext(context.Background())
	ctx, cancel := context.WithTimeout(allocCtx, timeout)

	if err := chromedp.Run(ctx, chromedp.Navigate(url), chromedp.WaitReady("body")); err != nil {
		cancel()
		allocCancel()
		return nil, err
	}

	return &LiveDOM{ctx: ctx, cancel: func() { cancel(); allocCancel() }}, nil
}

// Close releases the browser tab.
func (d *LiveDOM) Close() {
	if d == nil || d.cancel == nil {
		return
	}
	d.cancel()
}

// QuerySelectorAll matches selector against the live page and snapshots
// each node's text, outer HTML, and attributes immediately; an invalid
// selector or a closed tab both degrade to zero matches rather than
// panicking.
func (d *LiveDOM) QuerySelectorAll(selector string) (out []interfaces.DOMElement) {
	if d == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()

	var nodes []*cdp.Node
	if err := chromedp.Run(d.ctx, chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll)); err != nil {
		return nil
	}

	out = make([]interfaces.DOMElement, 0, len(nodes))
	for _, n := range nodes {
		var text, html string
		_ = chromedp.Run(d.ctx,
			chromedp.TextContent([]cdp.NodeID{n.NodeID}, &text, chromedp.ByNodeID),
			chromedp.OuterHTML([]cdp.NodeID{n.NodeID}, &html, chromedp.ByNodeID),
		)
		attrs := make(map[string]string, len(n.Attributes)/2)
		for i := 0; i+1 < len(n.Attributes); i += 2 {
			attrs[n.Attributes[i]] = n.Attributes[i+1]
		}
		out = append(out, chromedpElement{text: text, html: html, attrs: attrs})
	}
	return out
}
