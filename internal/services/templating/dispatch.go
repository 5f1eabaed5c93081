package templating

import (
	"strings"

	"github.com/ternarybob/inkwell/internal/interfaces"
	"github.com/ternarybob/inkwell/internal/models"
)

type exprKind int

const (
	exprSelectorText exprKind = iota
	exprSelectorHTML
	exprSchemaTyped
	exprSchemaShorthand
	exprMetaName
	exprMetaProperty
	exprPrompt
	exprVariable
)

// classified is the dispatcher's decision: which provider handles the
// expression and the arguments that provider needs.
type classified struct {
	kind exprKind
	a, b string
}

// splitExpression separates an expression's filter tail from its base,
// splitting on top-level '|' only (never inside quotes, parens, or
// "${...}" spans), then classifies the base by prefix.
func splitExpression(raw string) (base classified, filters []string) {
	trimmed := strings.TrimSpace(raw)
	parts := splitTopLevel(trimmed, '|')
	baseStr := strings.TrimSpace(parts[0])
	for _, f := range parts[1:] {
		filters = append(filters, strings.TrimSpace(f))
	}
	return classifyExpr(baseStr), filters
}

func classifyExpr(base string) classified {
	switch {
	case strings.HasPrefix(base, "selectorHtml:"):
		return classified{kind: exprSelectorHTML, a: base[len("selectorHtml:"):]}
	case strings.HasPrefix(base, "selector:"):
		return classified{kind: exprSelectorText, a: base[len("selector:"):]}
	case strings.HasPrefix(base, "schema:"):
		return classifySchema(base[len("schema:"):])
	case strings.HasPrefix(base, "meta:name:"):
		return classified{kind: exprMetaName, a: base[len("meta:name:"):]}
	case strings.HasPrefix(base, "meta:property:"):
		return classified{kind: exprMetaProperty, a: base[len("meta:property:"):]}
	case strings.HasPrefix(base, "prompt:"):
		return classified{kind: exprPrompt, a: base[len("prompt:"):]}
	case strings.HasPrefix(base, `"`) || strings.HasPrefix(base, `'`):
		return classified{kind: exprPrompt, a: base}
	default:
		return classified{kind: exprVariable, a: base}
	}
}

func classifySchema(rest string) classified {
	if strings.HasPrefix(rest, "@") {
		body := rest[1:]
		if idx := strings.IndexByte(body, ':'); idx >= 0 {
			return classified{kind: exprSchemaTyped, a: body[:idx], b: body[idx+1:]}
		}
		return classified{kind: exprSchemaTyped, a: body, b: ""}
	}
	return classified{kind: exprSchemaShorthand, a: rest}
}

// renderContext bundles everything a provider needs for one render: the
// live variable map, the page's schema index, its DOM handle, and its meta
// entries. It never outlives a single compiler.Render call.
type renderContext struct {
	vars    map[string]string
	schema  *schemaIndex
	dom     interfaces.DOMHandle
	meta    []models.MetaEntry
	pageURL string
}

// resolveProvider dispatches every non-prompt classification to its
// provider and returns the resulting carry. Prompt expressions are handled
// by the caller (compiler.go), which alone owns the sentinel table.
func (rc *renderContext) resolveProvider(c classified) models.FilterValue {
	switch c.kind {
	case exprSelectorText:
		return toFilterValue(resolveSelector(rc.dom, c.a, selectorModeText))
	case exprSelectorHTML:
		return toFilterValue(resolveSelector(rc.dom, c.a, selectorModeHTML))
	case exprSchemaTyped:
		v, ok := rc.schema.queryTyped(c.a, c.b)
		if !ok {
			return models.NewString("")
		}
		return toFilterValue(coerceList(v))
	case exprSchemaShorthand:
		v, ok := rc.schema.queryShorthand(c.a)
		if !ok {
			return models.NewString("")
		}
		return toFilterValue(coerceList(v))
	case exprMetaName:
		return models.NewString(lookupMeta(rc.meta, "name", c.a))
	case exprMetaProperty:
		return models.NewString(lookupMeta(rc.meta, "property", c.a))
	case exprVariable:
		return resolveVariable(rc.vars, c.a)
	default:
		return models.NewString("")
	}
}

func lookupMeta(entries []models.MetaEntry, attrName, attrValue string) string {
	for _, e := range entries {
		if e.AttrName == attrName && e.AttrValue == attrValue {
			return e.Content
		}
	}
	return ""
}

// resolveVariable looks up the root name in the live variable map, then
// walks any remaining path steps via the path resolver, auto-parsing the
// stored string if it holds stringified JSON.
func resolveVariable(vars map[string]string, base string) models.FilterValue {
	steps := parsePath(base)
	if len(steps) == 0 || steps[0].kind != stepProperty {
		return models.NewString("")
	}
	raw, found := vars[steps[0].name]
	if !found {
		return models.NewString("")
	}
	if len(steps) == 1 {
		return models.NewString(raw)
	}
	parsed := autoParse(raw)
	result, ok := resolveSteps(parsed, steps[1:])
	if !ok {
		return models.NewString("")
	}
	return toFilterValue(result)
}

// toFilterValue wraps a resolved value as a FilterValue, choosing JSON kind
// for arrays/objects and string kind for everything else, so a provider's
// array or object result serializes as JSON on final emission.
func toFilterValue(v interface{}) models.FilterValue {
	switch t := v.(type) {
	case nil:
		return models.NewString("")
	case string:
		return models.NewString(t)
	case []interface{}, map[string]interface{}:
		return models.NewJSON(t)
	default:
		return models.NewString(selectorResultString(t))
	}
}
