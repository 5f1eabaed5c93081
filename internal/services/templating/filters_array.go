package templating

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ternarybob/inkwell/internal/models"
)

func init() {
	registerFilter("first", filterFirst)
	registerFilter("last", filterLast)
	registerFilter("nth", filterNth)
	registerFilter("reverse", filterReverse)
	registerFilter("slice", filterSlice)
	registerFilter("split", filterSplit)
	registerFilter("join", filterJoin)
	registerFilter("unique", filterUnique)
	registerFilter("merge", filterMerge)
	registerFilter("object", filterObject)
	registerFilter("length", filterLength)
}

func filterFirst(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	arr, ok := value.AsArray()
	if !ok || len(arr) == 0 {
		return models.NewString("")
	}
	return toFilterValue(arr[0])
}

func filterLast(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	arr, ok := value.AsArray()
	if !ok || len(arr) == 0 {
		return models.NewString("")
	}
	return toFilterValue(arr[len(arr)-1])
}

func filterReverse(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if arr, ok := value.AsArray(); ok {
		out := make([]interface{}, len(arr))
		for i, v := range arr {
			out[len(arr)-1-i] = v
		}
		return models.NewJSON(out)
	}
	if value.Kind == models.KindString {
		runes := []rune(value.Str)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return models.NewString(string(runes))
	}
	return value
}

// nthSingle matches a plain (possibly negative) integer index.
var nthSingle = regexp.MustCompile(`^-?\d+$`)

// nthFormula matches a CSS-style An+B expression.
var nthFormula = regexp.MustCompile(`^(-?\d*)n([+-]\d+)?$`)

func filterNth(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	arr, ok := value.AsArray()
	if !ok {
		return models.NewString("")
	}
	pattern := strings.TrimSpace(firstArgString(args, ""))
	if pattern == "" {
		return models.NewString("")
	}

	if nthSingle.MatchString(pattern) {
		idx, _ := strconv.Atoi(pattern)
		if idx < 0 {
			idx += len(arr)
		}
		if idx < 0 || idx >= len(arr) {
			return models.NewString("")
		}
		return toFilterValue(arr[idx])
	}

	if m := nthFormula.FindStringSubmatch(pattern); m != nil {
		a := 1
		if m[1] == "-" {
			a = -1
		} else if m[1] != "" {
			a, _ = strconv.Atoi(m[1])
		}
		b := 0
		if m[2] != "" {
			b, _ = strconv.Atoi(m[2])
		}
		var out []interface{}
		for k := 0; ; k++ {
			idx := a*k + b
			if idx >= len(arr) {
				if a <= 0 {
					break
				}
				break
			}
			if idx >= 0 {
				out = append(out, arr[idx])
			}
			if a <= 0 {
				break
			}
		}
		return models.NewJSON(emptyToNilSlice(out))
	}

	return filterNthSteps(arr, pattern)
}

// filterNthSteps parses "i,j,k:size": a comma-separated list of offsets,
// where the last entry may carry ":size" to define the group size each
// offset repeats across. Without a size suffix, offsets are one-shot
// absolute indices.
func filterNthSteps(arr []interface{}, pattern string) models.FilterValue {
	parts := strings.Split(pattern, ",")
	size := 0
	var offsets []int
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i == len(parts)-1 {
			if idx := strings.IndexByte(p, ':'); idx >= 0 {
				size, _ = strconv.Atoi(p[idx+1:])
				p = p[:idx]
			}
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return models.NewString("")
		}
		offsets = append(offsets, n)
	}

	var out []interface{}
	if size <= 0 {
		for _, off := range offsets {
			if off >= 0 && off < len(arr) {
				out = append(out, arr[off])
			}
		}
		return models.NewJSON(emptyToNilSlice(out))
	}
	for groupStart := 0; groupStart < len(arr); groupStart += size {
		for _, off := range offsets {
			idx := groupStart + off
			if idx >= 0 && idx < len(arr) && idx < groupStart+size {
				out = append(out, arr[idx])
			}
		}
	}
	return models.NewJSON(emptyToNilSlice(out))
}

func emptyToNilSlice(s []interface{}) []interface{} {
	if s == nil {
		return []interface{}{}
	}
	return s
}

func filterSlice(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	arr, ok := value.AsArray()
	if !ok {
		return value
	}
	n := len(arr)
	start := 0
	end := n
	if len(args.positional) > 0 {
		start = parseSliceIndex(args.positional[0].str, n, 0)
	}
	if len(args.positional) > 1 {
		end = parseSliceIndex(args.positional[1].str, n, n)
	}
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		return models.NewJSON([]interface{}{})
	}
	return models.NewJSON(append([]interface{}{}, arr[start:end]...))
}

func parseSliceIndex(s string, length, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	if n < 0 {
		n += length
	}
	return n
}

func filterSplit(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if value.Kind != models.KindString {
		return value
	}
	sep := firstArgString(args, ",")
	parts := strings.Split(value.Str, sep)
	out := make([]interface{}, len(parts))
	for i, p := range parts {
		out[i] = p
	}
	return models.NewJSON(out)
}

func filterJoin(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	arr, ok := value.AsArray()
	if !ok {
		return value
	}
	sep := firstArgString(args, ",")
	parts := make([]string, len(arr))
	for i, v := range arr {
		parts[i] = scalarToString(v)
	}
	return models.NewString(strings.Join(parts, sep))
}

func scalarToString(v interface{}) string {
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

func filterUnique(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	arr, ok := value.AsArray()
	if !ok {
		return value
	}
	var out []interface{}
	seen := make(map[string]bool)
	for _, v := range arr {
		key, err := json.Marshal(v)
		if err != nil {
			continue
		}
		if seen[string(key)] {
			continue
		}
		seen[string(key)] = true
		out = append(out, v)
	}
	return models.NewJSON(emptyToNilSlice(out))
}

func filterMerge(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	arr, ok := value.AsArray()
	if !ok {
		return value
	}
	out := append([]interface{}{}, arr...)
	for _, tok := range args.positional {
		var extra interface{}
		if err := json.Unmarshal([]byte(tok.str), &extra); err == nil {
			if extraArr, ok := extra.([]interface{}); ok {
				out = append(out, extraArr...)
				continue
			}
		}
		out = append(out, tok.str)
	}
	return models.NewJSON(out)
}

// filterObject reshapes an object carry into an array view, in sorted key
// order: "keys" (the default) returns the array of object keys, "values" the
// array of values, "array" the array of [key, value] pairs. A carry that is
// not an object passes through unchanged.
func filterObject(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	obj, ok := value.AsObject()
	if !ok {
		return value
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	mode := firstArgString(args, "keys")
	switch mode {
	case "values":
		out := make([]interface{}, 0, len(keys))
		for _, k := range keys {
			out = append(out, obj[k])
		}
		return models.NewJSON(emptyToNilSlice(out))
	case "array":
		out := make([]interface{}, 0, len(keys))
		for _, k := range keys {
			out = append(out, []interface{}{k, obj[k]})
		}
		return models.NewJSON(emptyToNilSlice(out))
	default:
		out := make([]interface{}, 0, len(keys))
		for _, k := range keys {
			out = append(out, k)
		}
		return models.NewJSON(emptyToNilSlice(out))
	}
}

func filterLength(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if arr, ok := value.AsArray(); ok {
		return models.NewString(strconv.Itoa(len(arr)))
	}
	if obj, ok := value.AsObject(); ok {
		return models.NewString(strconv.Itoa(len(obj)))
	}
	if value.Kind == models.KindString {
		return models.NewString(strconv.Itoa(len([]rune(value.Str))))
	}
	return models.NewString("0")
}
