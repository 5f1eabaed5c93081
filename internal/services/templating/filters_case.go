package templating

import (
	"strings"
	"unicode"

	"github.com/ternarybob/inkwell/internal/models"
)

func init() {
	registerFilter("upper", stringFilter(strings.ToUpper))
	registerFilter("lower", stringFilter(strings.ToLower))
	registerFilter("trim", stringFilter(strings.TrimSpace))
	registerFilter("capitalize", stringFilter(capitalize))
	registerFilter("camel", stringFilter(toCamel))
	registerFilter("pascal", stringFilter(toPascal))
	registerFilter("snake", stringFilter(toSnake))
	registerFilter("kebab", stringFilter(toKebab))
	registerFilter("title", stringFilter(toTitle))
	registerFilter("uncamel", stringFilter(unCamel))
}

// stringFilter adapts a pure string->string transform into a filterFunc:
// non-string carries pass through unchanged.
func stringFilter(f func(string) string) filterFunc {
	return func(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
		if value.Kind != models.KindString {
			return value
		}
		return models.NewString(f(value.Str))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// splitWords breaks camelCase, PascalCase, snake_case, kebab-case, and
// space-separated input into lowercase word fragments.
func splitWords(s string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, strings.ToLower(cur.String()))
			cur.Reset()
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case unicode.IsUpper(r):
			if i > 0 && !unicode.IsUpper(runes[i-1]) {
				flush()
			} else if i > 0 && unicode.IsUpper(runes[i-1]) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				flush()
			}
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return words
}

func toCamel(s string) string {
	words := splitWords(s)
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(w)
			continue
		}
		b.WriteString(capitalize(w))
	}
	return b.String()
}

func toPascal(s string) string {
	words := splitWords(s)
	var b strings.Builder
	for _, w := range words {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

func toSnake(s string) string {
	return strings.Join(splitWords(s), "_")
}

func toKebab(s string) string {
	return strings.Join(splitWords(s), "-")
}

func toTitle(s string) string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func unCamel(s string) string {
	return strings.Join(splitWords(s), " ")
}
