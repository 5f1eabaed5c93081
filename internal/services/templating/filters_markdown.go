package templating

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/ternarybob/inkwell/internal/models"
)

func init() {
	registerFilter("blockquote", filterBlockquote)
	registerFilter("callout", filterCallout)
	registerFilter("list", filterList)
	registerFilter("table", filterTable)
	registerFilter("link", filterLink)
	registerFilter("wikilink", filterWikilink)
	registerFilter("image", filterImage)
	registerFilter("footnote", filterFootnote)
	registerFilter("fragment_link", filterFragmentLink)
}

func filterBlockquote(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if value.Kind != models.KindString {
		return value
	}
	lines := strings.Split(value.Str, "\n")
	for i, l := range lines {
		lines[i] = "> " + l
	}
	return models.NewString(strings.Join(lines, "\n"))
}

// filterCallout wraps the carry in an Obsidian-style callout block:
// callout(kind, title?, folded?).
func filterCallout(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if value.Kind != models.KindString {
		return value
	}
	kind := firstArgString(args, "note")
	title := ""
	if len(args.positional) > 1 {
		title = args.positional[1].str
	}
	fold := ""
	if len(args.positional) > 2 {
		if args.positional[2].str == "true" {
			fold = "-"
		} else {
			fold = "+"
		}
	}

	header := fmt.Sprintf("> [!%s]%s", kind, fold)
	if title != "" {
		header += " " + title
	}

	var b strings.Builder
	b.WriteString(header)
	for _, line := range strings.Split(value.Str, "\n") {
		b.WriteString("\n> ")
		b.WriteString(line)
	}
	return models.NewString(b.String())
}

// filterList renders an array as a Markdown list: bullet | numbered | task
// | numbered-task.
func filterList(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	arr, ok := value.AsArray()
	if !ok {
		return value
	}
	if len(arr) == 0 {
		return models.NewString("")
	}
	style := firstArgString(args, "bullet")

	var b strings.Builder
	for i, item := range arr {
		text := scalarToString(item)
		switch style {
		case "numbered":
			fmt.Fprintf(&b, "%d. %s\n", i+1, text)
		case "task":
			fmt.Fprintf(&b, "- [ ] %s\n", text)
		case "numbered-task":
			fmt.Fprintf(&b, "%d. [ ] %s\n", i+1, text)
		default:
			fmt.Fprintf(&b, "- %s\n", text)
		}
	}
	return models.NewString(b.String())
}

// filterTable renders an array of objects as a Markdown table, inferring
// columns from the first row's keys unless explicit headers are given.
func filterTable(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	arr, ok := value.AsArray()
	if !ok || len(arr) == 0 {
		return models.NewString("")
	}

	var headers []string
	for _, tok := range args.positional {
		headers = append(headers, tok.str)
	}
	if headers == nil {
		first, ok := arr[0].(map[string]interface{})
		if !ok {
			return models.NewString("")
		}
		for k := range first {
			headers = append(headers, k)
		}
		sort.Strings(headers)
	}

	var b strings.Builder
	b.WriteString("| ")
	b.WriteString(strings.Join(headers, " | "))
	b.WriteString(" |\n|")
	for range headers {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, row := range arr {
		obj, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		b.WriteString("| ")
		cells := make([]string, len(headers))
		for i, h := range headers {
			cells[i] = scalarToString(obj[h])
		}
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString(" |\n")
	}
	return models.NewString(strings.TrimRight(b.String(), "\n"))
}

type linkLike struct {
	text, href string
}

// linkLikesFrom normalizes the carry into one or more {text,href} pairs,
// accepting a bare string, a {text,url} (or {alt,src}) object, or an array
// of either.
func linkLikesFrom(value models.FilterValue, hrefKey string) []linkLike {
	if value.Kind == models.KindString {
		return []linkLike{{text: value.Str, href: value.Str}}
	}
	if obj, ok := value.AsObject(); ok {
		return []linkLike{linkLikeFromObject(obj, hrefKey)}
	}
	if arr, ok := value.AsArray(); ok {
		out := make([]linkLike, 0, len(arr))
		for _, item := range arr {
			switch t := item.(type) {
			case string:
				out = append(out, linkLike{text: t, href: t})
			case map[string]interface{}:
				out = append(out, linkLikeFromObject(t, hrefKey))
			}
		}
		return out
	}
	return nil
}

func linkLikeFromObject(obj map[string]interface{}, hrefKey string) linkLike {
	text, _ := obj["text"].(string)
	if text == "" {
		text, _ = obj["alt"].(string)
	}
	href, _ := obj[hrefKey].(string)
	return linkLike{text: text, href: href}
}

func filterLink(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	items := linkLikesFrom(value, "url")
	if items == nil {
		return value
	}
	var parts []string
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("[%s](%s)", it.text, it.href))
	}
	return models.NewString(strings.Join(parts, " "))
}

func filterWikilink(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	items := linkLikesFrom(value, "url")
	if items == nil {
		return value
	}
	var parts []string
	for _, it := range items {
		if it.text != "" && it.text != it.href {
			parts = append(parts, fmt.Sprintf("[[%s|%s]]", it.href, it.text))
		} else {
			parts = append(parts, fmt.Sprintf("[[%s]]", it.href))
		}
	}
	return models.NewString(strings.Join(parts, " "))
}

func filterImage(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	items := linkLikesFrom(value, "src")
	if items == nil {
		return value
	}
	var parts []string
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("![%s](%s)", it.text, it.href))
	}
	return models.NewString(strings.Join(parts, " "))
}

// filterFootnote accepts an array of numeric ids or an object of slug ids
// and emits the corresponding "[^id]" reference markers.
func filterFootnote(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if arr, ok := value.AsArray(); ok {
		var parts []string
		for i, v := range arr {
			id := scalarToString(v)
			if id == "" {
				id = strconv.Itoa(i + 1)
			}
			parts = append(parts, fmt.Sprintf("[^%s]", id))
		}
		return models.NewString(strings.Join(parts, ""))
	}
	if obj, ok := value.AsObject(); ok {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var parts []string
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("[^%s]", k))
		}
		return models.NewString(strings.Join(parts, ""))
	}
	return value
}

// filterFragmentLink transforms highlight objects ({text, ...}) into the
// page URL carrying a "#:~:text=" anchor for that highlight's text.
func filterFragmentLink(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	build := func(text string) string {
		return rc.pageURL + "#:~:text=" + url.QueryEscape(text)
	}
	if obj, ok := value.AsObject(); ok {
		text, _ := obj["text"].(string)
		return models.NewString(build(text))
	}
	if arr, ok := value.AsArray(); ok {
		out := make([]interface{}, 0, len(arr))
		for _, item := range arr {
			if obj, ok := item.(map[string]interface{}); ok {
				text, _ := obj["text"].(string)
				out = append(out, build(text))
			}
		}
		return models.NewJSON(out)
	}
	return value
}
