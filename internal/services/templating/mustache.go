package templating

import "strings"

// scanMustache walks s, locating non-nested "{{...}}" spans (mustache
// expressions never nest) and calling handle with the inner text as written,
// untrimmed (the handlers trim it themselves).
// When handle reports matched=false, the original span (braces included)
// is copied through unchanged; an unterminated "{{" copies the remainder
// of s literally.
func scanMustache(s string, handle func(raw string) (replacement string, matched bool)) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		start := strings.Index(s[i:], "{{")
		if start < 0 {
			b.WriteString(s[i:])
			break
		}
		start += i
		b.WriteString(s[i:start])

		end := strings.Index(s[start+2:], "}}")
		if end < 0 {
			b.WriteString(s[start:])
			break
		}
		end = start + 2 + end

		inner := s[start+2 : end]
		replacement, matched := handle(inner)
		if matched {
			b.WriteString(replacement)
		} else {
			b.WriteString(s[start : end+2])
		}
		i = end + 2
	}
	return b.String()
}
