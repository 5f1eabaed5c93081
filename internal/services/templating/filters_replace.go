package templating

import (
	"regexp"
	"strings"

	"github.com/ternarybob/inkwell/internal/models"
)

func init() {
	registerFilter("replace", filterReplace)
}

// filterReplace supports a single search:replacement pair, an object of
// pairs applied in order, or a /pattern/flags regex in the search position.
func filterReplace(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if value.Kind != models.KindString {
		return value
	}
	out := value.Str

	if len(args.keyed) > 0 {
		for _, key := range args.keyOrder {
			out = strings.ReplaceAll(out, key, args.keyed[key].str)
		}
		return models.NewString(out)
	}

	if len(args.positional) < 2 {
		return value
	}
	search := args.positional[0]
	replacement := args.positional[1].str

	if search.isRegex {
		re := compileFlaggedRegex(search.pattern, search.flags)
		if re == nil {
			return value
		}
		return models.NewString(re.ReplaceAllString(out, replacement))
	}

	return models.NewString(strings.ReplaceAll(out, search.str, replacement))
}

// compileFlaggedRegex compiles pattern honoring an "i" (case-insensitive)
// flag; other flags are accepted but don't change Go regexp semantics
// (ReplaceAllString is always "global").
func compileFlaggedRegex(pattern, flags string) *regexp.Regexp {
	if strings.Contains(flags, "i") {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	return re
}
