package templating

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/ternarybob/arbor"
)

// schemaIndex flattens every JSON-LD blob on a page into a lookup keyed by
// @type, plus a flat list of every registered object for shorthand queries.
type schemaIndex struct {
	byType map[string][]map[string]interface{}
	all    []map[string]interface{}
}

// buildSchemaIndex parses each blob, ignoring parse failures silently so one
// malformed script tag never poisons the others.
func buildSchemaIndex(blobs []string, logger arbor.ILogger) *schemaIndex {
	idx := &schemaIndex{byType: make(map[string][]map[string]interface{})}
	var level []interface{}
	for _, blob := range blobs {
		var parsed interface{}
		if err := json.Unmarshal([]byte(blob), &parsed); err != nil {
			if logger != nil {
				logger.Debug().Err(err).Msg("schema index: ignoring malformed JSON-LD blob")
			}
			continue
		}
		level = append(level, parsed)
	}
	for len(level) > 0 {
		var next []interface{}
		for _, node := range level {
			idx.walk(node, &next)
		}
		level = next
	}
	return idx
}

// walk registers node (and, for an array, each of its elements) and appends
// the children of every object it visits to next, so buildSchemaIndex
// registers objects breadth-first, one nesting level at a time.
func (idx *schemaIndex) walk(node interface{}, next *[]interface{}) {
	switch v := node.(type) {
	case map[string]interface{}:
		if typeVal, ok := v["@type"]; ok {
			for _, t := range typeNames(typeVal) {
				idx.byType[t] = append(idx.byType[t], v)
			}
			idx.all = append(idx.all, v)
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			*next = append(*next, v[k])
		}
	case []interface{}:
		for _, child := range v {
			idx.walk(child, next)
		}
	}
}

// typeNames normalizes @type, which may be a single string or an array of
// strings, into a list of registration keys with any leading "@" stripped.
func typeNames(typeVal interface{}) []string {
	var names []string
	switch t := typeVal.(type) {
	case string:
		names = append(names, strings.TrimPrefix(t, "@"))
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok {
				names = append(names, strings.TrimPrefix(s, "@"))
			}
		}
	}
	return names
}

// queryTyped resolves "@Type:path": the first registered object of Type,
// then path via the path resolver.
func (idx *schemaIndex) queryTyped(typeName, path string) (interface{}, bool) {
	objs := idx.byType[typeName]
	if len(objs) == 0 {
		return nil, false
	}
	return resolvePath(objs[0], path)
}

// queryShorthand resolves "key" or "key.sub": breadth-first over every
// registered object, returning the first value whose first step matches.
func (idx *schemaIndex) queryShorthand(path string) (interface{}, bool) {
	steps := parsePath(path)
	if len(steps) == 0 {
		return nil, false
	}
	for _, obj := range idx.all {
		if v, ok := resolveSteps(obj, steps); ok {
			return v, true
		}
	}
	return nil, false
}

// listItemPattern matches a numbered ("1. ") or bulleted ("- ", "* ") list
// item at the start of a line.
var listItemPattern = regexp.MustCompile(`^\s*(\d+\.|[-*])\s+`)

// coerceList applies the spec's list-string coercion: a single scalar string
// that looks like a numbered or bulleted list is split on line boundaries
// into an array of trimmed item texts.
func coerceList(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok {
		return value
	}
	lines := strings.Split(s, "\n")
	if len(lines) == 0 || !listItemPattern.MatchString(lines[0]) {
		return value
	}
	items := make([]interface{}, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		item := listItemPattern.ReplaceAllString(line, "")
		items = append(items, strings.TrimSpace(item))
	}
	return items
}
