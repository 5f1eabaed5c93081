package templating

import (
	"regexp"
	"strings"

	"github.com/ternarybob/inkwell/internal/models"
)

func init() {
	registerFilter("safe_name", filterSafeName)
}

var (
	windowsIllegal = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	macIllegal     = regexp.MustCompile(`[:/\x00]`)
	linuxIllegal   = regexp.MustCompile(`[/\x00]`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// filterSafeName sanitizes a string for use as a filesystem name on the
// given OS flavor ("windows" | "mac" | "linux", default "windows" — the
// most restrictive superset, so output is safe everywhere by default).
func filterSafeName(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if value.Kind != models.KindString {
		return value
	}
	flavor := firstArgString(args, "windows")

	var illegal *regexp.Regexp
	switch flavor {
	case "mac":
		illegal = macIllegal
	case "linux":
		illegal = linuxIllegal
	default:
		illegal = windowsIllegal
	}

	out := illegal.ReplaceAllString(value.Str, "")
	out = whitespaceRun.ReplaceAllString(out, " ")
	out = strings.Trim(out, " .")
	return models.NewString(out)
}
