package templating

import (
	"strings"

	"github.com/ternarybob/inkwell/internal/common"
	"github.com/ternarybob/inkwell/internal/models"
)

func init() {
	registerFilter("map", filterMap)
	registerFilter("template", filterTemplate)
}

// filterMap applies an arrow expression to every element of an array.
// Anything outside the two accepted body shapes (object literal, template
// literal) or a bare parameter path is an explicit no-op: the carry passes
// through unchanged rather than attempting partial support.
func filterMap(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	arr, ok := value.AsArray()
	if !ok {
		return value
	}
	raw := strings.TrimSpace(firstArgString(args, ""))
	expr, ok := parseArrow(raw)
	if !ok {
		common.GetLogger().Debug().Str("expr", raw).Msg("map: unsupported arrow expression, carry passed through unchanged")
		return value
	}
	out := make([]interface{}, len(arr))
	for i, elem := range arr {
		out[i] = evalArrowBody(expr, elem)
	}
	return models.NewJSON(out)
}

// filterTemplate applies a "${path}"-interpolated quoted string per element
// of an array, concatenating the per-element expansions, or once against an
// object carry.
func filterTemplate(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	raw := firstArgString(args, "")

	if arr, ok := value.AsArray(); ok {
		var b strings.Builder
		for _, elem := range arr {
			b.WriteString(expandTemplate(raw, func(path string) (interface{}, bool) {
				return resolvePath(elem, path)
			}))
		}
		return models.NewString(b.String())
	}
	if obj, ok := value.AsObject(); ok {
		return models.NewString(expandTemplate(raw, func(path string) (interface{}, bool) {
			return resolvePath(obj, path)
		}))
	}
	return value
}
