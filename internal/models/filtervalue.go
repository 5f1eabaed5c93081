package models

import "encoding/json"

// Kind discriminates a FilterValue's carried representation.
type Kind int

const (
	// KindString carries a plain, already-final string.
	KindString Kind = iota
	// KindJSON carries a parsed Go value (map[string]interface{}, []interface{},
	// float64, bool, or nil) produced by json.Unmarshal.
	KindJSON
)

// FilterValue is the tagged union that flows through a filter chain: either
// a bare string or a parsed JSON value. Filters declare what they accept and
// return; the runner performs the auto-upgrade/auto-serialize at each
// boundary so individual filters never have to guess their input shape.
type FilterValue struct {
	Kind Kind
	Str  string
	JSON interface{}
}

// NewString wraps a plain string carry.
func NewString(s string) FilterValue {
	return FilterValue{Kind: KindString, Str: s}
}

// NewJSON wraps a parsed value carry.
func NewJSON(v interface{}) FilterValue {
	return FilterValue{Kind: KindJSON, JSON: v}
}

// Upgrade returns v unchanged if it is already JSON-kinded, or re-parses a
// string carry and upgrades it when that string is valid JSON whose root is
// an array or object. Scalars (quoted JSON strings, numbers, bare words)
// stay string-kinded: only array/object roots upgrade.
func (v FilterValue) Upgrade() FilterValue {
	if v.Kind == KindJSON {
		return v
	}
	trimmed := v.Str
	if trimmed == "" {
		return v
	}
	first := firstNonSpace(trimmed)
	if first != '{' && first != '[' {
		return v
	}
	var parsed interface{}
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return v
	}
	return NewJSON(parsed)
}

func firstNonSpace(s string) byte {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return s[i]
		}
	}
	return 0
}

// String renders the final string form: JSON carries are re-serialized
// compactly, string carries pass through unchanged.
func (v FilterValue) String() string {
	if v.Kind == KindString {
		return v.Str
	}
	if v.JSON == nil {
		return ""
	}
	b, err := json.Marshal(v.JSON)
	if err != nil {
		return ""
	}
	return string(b)
}

// AsArray returns the carry's underlying slice when it is JSON-kinded and
// array-rooted, and ok=true. Used by filters that only make sense over
// arrays (first, last, nth, reverse, slice, unique, join, ...).
func (v FilterValue) AsArray() ([]interface{}, bool) {
	v = v.Upgrade()
	if v.Kind != KindJSON {
		return nil, false
	}
	arr, ok := v.JSON.([]interface{})
	return arr, ok
}

// AsObject returns the carry's underlying map when it is JSON-kinded and
// object-rooted, and ok=true.
func (v FilterValue) AsObject() (map[string]interface{}, bool) {
	v = v.Upgrade()
	if v.Kind != KindJSON {
		return nil, false
	}
	obj, ok := v.JSON.(map[string]interface{})
	return obj, ok
}
