package templating

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/inkwell/internal/models"
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func init() {
	registerFilter("markdown", filterMarkdown)
	registerFilter("strip_tags", filterStripTags)
	registerFilter("remove_tags", filterRemoveTags)
	registerFilter("replace_tags", filterReplaceTags)
	registerFilter("strip_attr", filterStripAttr)
	registerFilter("remove_attr", filterRemoveAttr)
	registerFilter("remove_html", filterRemoveHTML)
	registerFilter("strip_md", filterStripMd)
	registerFilter("html_to_json", filterHTMLToJSON)
}

// filterMarkdown converts HTML to Markdown using the page URL for relative
// link resolution, matching the context's own HTML->Markdown conversion.
func filterMarkdown(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if value.Kind != models.KindString {
		return value
	}
	converter := md.NewConverter(rc.pageURL, true, nil)
	out, err := converter.ConvertString(value.Str)
	if err != nil {
		return value
	}
	return models.NewString(out)
}

func argSet(args parsedArgs) map[string]bool {
	set := make(map[string]bool, len(args.positional))
	for _, tok := range args.positional {
		for _, name := range strings.Split(tok.str, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				set[name] = true
			}
		}
	}
	return set
}

// withParsedHTML parses htmlStr as an HTML fragment, lets mutate operate
// on the resulting document, and re-serializes the body's inner HTML. On a
// parse or serialization failure it reports false, and each caller then
// returns its input unchanged, per the DOM-exception degrade rule.
func withParsedHTML(htmlStr string, mutate func(*goquery.Document)) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return "", false
	}
	mutate(doc)
	out, err := doc.Find("body").Html()
	if err != nil {
		return "", false
	}
	return out, true
}

func filterStripTags(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if value.Kind != models.KindString {
		return value
	}
	keep := argSet(args)
	out, ok := withParsedHTML(value.Str, func(doc *goquery.Document) {
		var nodes []*goquery.Selection
		doc.Find("body *").Each(func(_ int, s *goquery.Selection) { nodes = append(nodes, s) })
		for i := len(nodes) - 1; i >= 0; i-- {
			s := nodes[i]
			if keep[goquery.NodeName(s)] {
				continue
			}
			inner, err := s.Html()
			if err != nil {
				continue
			}
			s.ReplaceWithHtml(inner)
		}
	})
	if !ok {
		return value
	}
	return models.NewString(out)
}

func filterRemoveTags(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if value.Kind != models.KindString {
		return value
	}
	tags := argSet(args)
	if len(tags) == 0 {
		return value
	}
	var selectors []string
	for t := range tags {
		selectors = append(selectors, t)
	}
	out, ok := withParsedHTML(value.Str, func(doc *goquery.Document) {
		doc.Find(strings.Join(selectors, ",")).Remove()
	})
	if !ok {
		return value
	}
	return models.NewString(out)
}

func filterReplaceTags(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if value.Kind != models.KindString {
		return value
	}
	if len(args.positional) < 2 {
		return value
	}
	from, to := args.positional[0].str, args.positional[1].str
	out, ok := withParsedHTML(value.Str, func(doc *goquery.Document) {
		doc.Find(from).Each(func(_ int, s *goquery.Selection) {
			inner, err := s.Html()
			if err != nil {
				return
			}
			var attrs strings.Builder
			if node := s.Get(0); node != nil {
				for _, a := range node.Attr {
					attrs.WriteByte(' ')
					attrs.WriteString(a.Key)
					attrs.WriteString(`="`)
					attrs.WriteString(a.Val)
					attrs.WriteString(`"`)
				}
			}
			s.ReplaceWithHtml("<" + to + attrs.String() + ">" + inner + "</" + to + ">")
		})
	})
	if !ok {
		return value
	}
	return models.NewString(out)
}

func filterStripAttr(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if value.Kind != models.KindString {
		return value
	}
	keep := argSet(args)
	out, ok := withParsedHTML(value.Str, func(doc *goquery.Document) {
		doc.Find("*").Each(func(_ int, s *goquery.Selection) {
			node := s.Get(0)
			if node == nil {
				return
			}
			filtered := node.Attr[:0]
			for _, a := range node.Attr {
				if keep[a.Key] {
					filtered = append(filtered, a)
				}
			}
			node.Attr = filtered
		})
	})
	if !ok {
		return value
	}
	return models.NewString(out)
}

func filterRemoveAttr(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if value.Kind != models.KindString {
		return value
	}
	drop := argSet(args)
	out, ok := withParsedHTML(value.Str, func(doc *goquery.Document) {
		doc.Find("*").Each(func(_ int, s *goquery.Selection) {
			node := s.Get(0)
			if node == nil {
				return
			}
			var kept []html.Attribute
			for _, a := range node.Attr {
				if !drop[a.Key] {
					kept = append(kept, a)
				}
			}
			node.Attr = kept
		})
	})
	if !ok {
		return value
	}
	return models.NewString(out)
}

func filterRemoveHTML(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if value.Kind != models.KindString {
		return value
	}
	selector := firstArgString(args, "")
	if selector == "" {
		return value
	}
	out, ok := withParsedHTML(value.Str, func(doc *goquery.Document) {
		doc.Find(selector).Remove()
	})
	if !ok {
		return value
	}
	return models.NewString(out)
}

// filterStripMd strips Markdown syntax by parsing to an AST and
// concatenating only the leaf text-node content, which is more faithful
// than a regex strip.
func filterStripMd(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if value.Kind != models.KindString {
		return value
	}
	source := []byte(value.Str)
	doc := goldmark.New().Parser().Parse(gtext.NewReader(source))

	var b strings.Builder
	_ = gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		if t, ok := n.(*gast.Text); ok {
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte('\n')
			}
		}
		return gast.WalkContinue, nil
	})
	return models.NewString(b.String())
}

// filterHTMLToJSON converts an HTML fragment into the spec's tagged-union
// JSON shape: {"type":"text","content":...} | {"type":"element","tag":...,
// "attributes":{...},"children":[...]}.
func filterHTMLToJSON(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if value.Kind != models.KindString {
		return value
	}
	nodes, err := html.ParseFragment(strings.NewReader(value.Str), &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body})
	if err != nil {
		return value
	}
	var children []interface{}
	for _, n := range nodes {
		if v := nodeToJSON(n); v != nil {
			children = append(children, v)
		}
	}
	if len(children) == 1 {
		return models.NewJSON(children[0])
	}
	return models.NewJSON(children)
}

func nodeToJSON(n *html.Node) interface{} {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return map[string]interface{}{"type": "text", "content": n.Data}
	case html.ElementNode:
		attrs := make(map[string]interface{}, len(n.Attr))
		for _, a := range n.Attr {
			attrs[a.Key] = a.Val
		}
		var children []interface{}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if v := nodeToJSON(c); v != nil {
				children = append(children, v)
			}
		}
		return map[string]interface{}{
			"type":       "element",
			"tag":        n.Data,
			"attributes": attrs,
			"children":   children,
		}
	default:
		return nil
	}
}
