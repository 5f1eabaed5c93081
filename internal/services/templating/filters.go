package templating

import (
	"sort"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/inkwell/internal/models"
)

// filterFunc is one named, pure, total filter: on a type mismatch it
// returns its input unchanged rather than erroring.
type filterFunc func(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue

// registry is the closed table of filter names to implementations,
// populated by each filters_*.go file's init(). Filter names are part of
// the public surface: adding one is additive, renaming or removing one is
// not.
var registry = make(map[string]filterFunc)

func registerFilter(name string, fn filterFunc) {
	if _, exists := registry[name]; exists {
		panic("templating: duplicate filter registration for " + name)
	}
	registry[name] = fn
}

// runFilterChain applies specs in strict left-to-right order, upgrading the
// carry to JSON at each boundary when it parses as an array/object, and
// serializing back to a stable string once the chain is exhausted.
func runFilterChain(carry models.FilterValue, specs []string, rc *renderContext, logger arbor.ILogger) models.FilterValue {
	for _, spec := range specs {
		name, argsRaw := splitFilterSpec(spec)
		fn, ok := registry[name]
		carry = carry.Upgrade()
		if !ok {
			if logger != nil {
				logger.Debug().Str("filter", name).Msg("unknown filter name, carry passed through unchanged")
			}
			continue
		}
		args := tokenizeArgs(argsRaw)
		carry = fn(carry, args, rc)
	}
	return carry
}

// splitFilterSpec splits "name:args" into its name and raw argument text.
// A filter with no ':' has no arguments.
func splitFilterSpec(spec string) (name, argsRaw string) {
	idx := strings.IndexByte(spec, ':')
	if idx < 0 {
		return spec, ""
	}
	return spec[:idx], spec[idx+1:]
}

// RegisteredFilterNames returns every filter name currently registered, in
// sorted order, for callers (e.g. an MCP discovery tool) that want to report
// the engine's stable filter surface without reading source.
func RegisteredFilterNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// firstArgString returns the first positional argument's string form, or
// def if there is none. Used by filters that accept a single optional
// bare/quoted argument (join, split, slice's separators, etc).
func firstArgString(args parsedArgs, def string) string {
	if len(args.positional) == 0 {
		return def
	}
	return args.positional[0].str
}
