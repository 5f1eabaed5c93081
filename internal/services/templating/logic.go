package templating

import (
	"regexp"
	"strings"

	"github.com/ternarybob/inkwell/internal/common"
	"github.com/ternarybob/inkwell/internal/models"
)

var (
	forOpenPattern = regexp.MustCompile(`\{%\s*for\s+(\w+)\s+in\s+([^%]+?)\s*%\}`)
	endforPattern  = regexp.MustCompile(`\{%\s*endfor\s*%\}`)
)

// expandLogic runs the logic-block pass: it finds the outermost "{% for
// NAME in SOURCE %} ... {% endfor %}" block, evaluates SOURCE exactly like a
// mustache expression, and for each resulting element clones the variable
// map, binds NAME, resolves "{{NAME}}"/"{{NAME.path}}" occurrences within the
// body immediately, and recurses into any nested blocks before moving on to
// the next sibling block. A non-array SOURCE expands the whole block to the
// empty string. Text containing no "{% for %}" is returned unchanged, so
// this is safe to call on the full template before the mustache pass runs.
func expandLogic(template string, rc *renderContext) string {
	loc := forOpenPattern.FindStringSubmatchIndex(template)
	if loc == nil {
		return template
	}

	headerStart, headerEnd := loc[0], loc[1]
	name := template[loc[2]:loc[3]]
	source := strings.TrimSpace(template[loc[4]:loc[5]])

	bodyEnd, tailStart, ok := findMatchingEndFor(template, headerEnd)
	if !ok {
		// Unterminated block: nothing sane to expand, leave the rest of the
		// template as literal text rather than looping forever.
		return template
	}

	before := template[:headerStart]
	body := template[headerEnd:bodyEnd]
	after := template[tailStart:]

	var expanded strings.Builder
	sourceValue := evalSource(rc, source)
	if arr, ok := sourceValue.AsArray(); ok {
		for _, elem := range arr {
			iterVars := cloneVars(rc.vars)
			iterVars[name] = toFilterValue(elem).String()
			iterRC := &renderContext{vars: iterVars, schema: rc.schema, dom: rc.dom, meta: rc.meta, pageURL: rc.pageURL}

			bound := substituteNameRefs(body, name, iterRC)
			expanded.WriteString(expandLogic(bound, iterRC))
		}
	}

	return before + expanded.String() + expandLogic(after, rc)
}

// findMatchingEndFor scans forward from a block's body start, tracking
// nested "{% for %}" opens, and returns the span of its matching "{% endfor
// %}".
func findMatchingEndFor(tmpl string, start int) (bodyEnd, tailStart int, ok bool) {
	depth := 1
	pos := start
	for {
		rest := tmpl[pos:]
		nextFor := forOpenPattern.FindStringIndex(rest)
		nextEnd := endforPattern.FindStringIndex(rest)
		if nextEnd == nil {
			return 0, 0, false
		}
		if nextFor != nil && nextFor[0] < nextEnd[0] {
			depth++
			pos += nextFor[1]
			continue
		}
		depth--
		endStart := pos + nextEnd[0]
		endStop := pos + nextEnd[1]
		if depth == 0 {
			return endStart, endStop, true
		}
		pos = endStop
	}
}

func cloneVars(vars map[string]string) map[string]string {
	out := make(map[string]string, len(vars)+1)
	for k, v := range vars {
		out[k] = v
	}
	return out
}

// evalSource evaluates SOURCE exactly like a mustache expression: classify,
// dispatch, run its filter tail, and return the resulting carry so the
// caller can test whether it is an array.
func evalSource(rc *renderContext, source string) models.FilterValue {
	cls, filters := splitExpression(source)
	if cls.kind == exprPrompt {
		return models.NewString("")
	}
	carry := rc.resolveProvider(cls)
	return runFilterChain(carry, filters, rc, common.GetLogger())
}

// substituteNameRefs resolves only the "{{NAME}}"/"{{NAME.path}}" mustache
// spans in body, using iterRC's variable map (which has NAME bound for this
// iteration). Every other span is left untouched for the later mustache
// pass.
func substituteNameRefs(body, name string, iterRC *renderContext) string {
	return scanMustache(body, func(raw string) (string, bool) {
		trimmed := strings.TrimSpace(raw)
		cls, filters := splitExpression(trimmed)
		if cls.kind != exprVariable {
			return "", false
		}
		steps := parsePath(cls.a)
		if len(steps) == 0 || steps[0].kind != stepProperty || steps[0].name != name {
			return "", false
		}
		carry := iterRC.resolveProvider(cls)
		carry = runFilterChain(carry, filters, iterRC, common.GetLogger())
		return carry.String(), true
	})
}
