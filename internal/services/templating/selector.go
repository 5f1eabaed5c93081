package templating

import (
	"encoding/json"
	"strings"

	"github.com/ternarybob/inkwell/internal/interfaces"
)

// selectorMode picks what a matched element contributes.
type selectorMode int

const (
	selectorModeText selectorMode = iota
	selectorModeHTML
)

// splitSelectorAttr separates a trailing "?attr" suffix from a CSS
// selector.
func splitSelectorAttr(expr string) (selector, attr string) {
	idx := strings.LastIndexByte(expr, '?')
	if idx < 0 {
		return expr, ""
	}
	return expr[:idx], expr[idx+1:]
}

// resolveSelector queries dom and reduces the matches to the spec's
// zero/one/many shape. A nil dom, an invalid selector, or zero matches all
// degrade to the empty string; the adapter never mutates the DOM and never
// raises.
func resolveSelector(dom interfaces.DOMHandle, expr string, mode selectorMode) interface{} {
	if dom == nil {
		return ""
	}
	selector, attr := splitSelectorAttr(expr)

	elems := safeQuery(dom, selector)
	if len(elems) == 0 {
		return ""
	}
	if len(elems) == 1 {
		return elementValue(elems[0], attr, mode)
	}

	results := make([]interface{}, len(elems))
	for i, el := range elems {
		results[i] = elementValue(el, attr, mode)
	}
	return results
}

// safeQuery isolates the adapter from a DOMHandle implementation that panics
// on a malformed selector (e.g. a native CSS-engine error surfaced as a
// panic); an invalid selector must still degrade to empty, not crash.
func safeQuery(dom interfaces.DOMHandle, selector string) (elems []interfaces.DOMElement) {
	defer func() {
		if recover() != nil {
			elems = nil
		}
	}()
	return dom.QuerySelectorAll(selector)
}

func elementValue(el interfaces.DOMElement, attr string, mode selectorMode) interface{} {
	if attr != "" {
		v, ok := el.GetAttribute(attr)
		if !ok {
			return ""
		}
		return v
	}
	if mode == selectorModeHTML {
		return el.OuterHTML()
	}
	return el.TextContent()
}

// selectorResultString renders resolveSelector's result the way the
// dispatcher needs it before handing off to the filter runner: arrays
// serialize to JSON, everything else is already a string.
func selectorResultString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
