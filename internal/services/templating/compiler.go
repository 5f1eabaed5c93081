package templating

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/ternarybob/inkwell/internal/common"
	"github.com/ternarybob/inkwell/internal/interfaces"
	"github.com/ternarybob/inkwell/internal/models"
)

// Opaque sentinel markers wrapping a prompt id in a first-pass render. The
// Private Use Area code points guarantee the sentinel can never collide with
// literal template text.
const (
	sentinelOpen  = ""
	sentinelClose = ""
)

var sentinelPattern = regexp.MustCompile(sentinelOpen + `([^` + sentinelClose + `]+)` + sentinelClose)

func promptSentinel(id string) string {
	return sentinelOpen + id + sentinelClose
}

// PromptRequest is one prompt expression deferred to the second pass: its
// interpolated text and the filter tail to apply to the interpreter's
// answer once it comes back.
type PromptRequest struct {
	ID      string
	Text    string
	filters []string
}

// RenderResult is a template's first-pass output: literal text interleaved
// with opaque prompt sentinels, plus the table of prompts a caller must
// resolve via an Interpreter before the render is complete. A template with
// no prompt expressions has an empty Prompts and is already final.
type RenderResult struct {
	Output  string
	Prompts []PromptRequest
	pageURL string
}

// Compiler is the template engine's single entry point: cache lookup, the
// two-pass compile (logic-block expansion then mustache dispatch), and the
// prompt-sentinel resolution pass.
type Compiler struct {
	cache *compiledCache
}

// NewCompiler wraps an optional compiled cache. A nil cache makes every
// Render a fresh compile.
func NewCompiler(cache *compiledCache) *Compiler {
	return &Compiler{cache: cache}
}

// Render compiles template against page and the caller-supplied variable
// map. URL normalization happens once, at PageContext construction
// (StripTextFragment), so Render never re-derives it.
func (c *Compiler) Render(template string, page *models.PageContext, vars map[string]string) RenderResult {
	key := cacheKey(template, page)
	if c.cache != nil {
		if cached, ok := c.cache.get(key); ok {
			return cached
		}
	}

	rc := &renderContext{
		vars:    mergeVars(vars, page),
		schema:  buildSchemaIndex(page.JSONLD, common.GetLogger()),
		dom:     page.DOM,
		meta:    page.Meta,
		pageURL: page.URL,
	}

	logicExpanded := expandLogic(template, rc)

	var prompts []PromptRequest
	output := scanMustache(logicExpanded, func(raw string) (string, bool) {
		trimmed := strings.TrimSpace(raw)
		cls, filters := splitExpression(trimmed)
		if cls.kind == exprPrompt {
			text := resolvePromptText(rc, cls.a)
			id := common.NewPromptID()
			prompts = append(prompts, PromptRequest{ID: id, Text: text, filters: filters})
			return promptSentinel(id), true
		}
		carry := rc.resolveProvider(cls)
		carry = runFilterChain(carry, filters, rc, common.GetLogger())
		return carry.String(), true
	})

	result := RenderResult{Output: output, Prompts: prompts, pageURL: page.URL}
	if c.cache != nil {
		c.cache.set(key, result)
	}
	return result
}

// ResolvePrompts runs every pending prompt through interp in one batch call
// (the interpreter owns its own concurrency/backoff), applies each prompt's
// filter tail to the returned answer, and substitutes every sentinel with
// its resolved text. A nil interp resolves every prompt to the empty
// string, matching the "no interpreter configured" degrade rule.
func (c *Compiler) ResolvePrompts(ctx context.Context, result RenderResult, interp interfaces.Interpreter) (string, error) {
	if len(result.Prompts) == 0 {
		return result.Output, nil
	}

	texts := make([]string, len(result.Prompts))
	for i, p := range result.Prompts {
		texts[i] = p.Text
	}

	var answers []string
	if interp != nil {
		var err error
		answers, err = interp.ResolvePrompts(ctx, texts)
		if err != nil {
			return "", err
		}
	}

	postRC := &renderContext{pageURL: result.pageURL}
	answerByID := make(map[string]string, len(result.Prompts))
	for i, p := range result.Prompts {
		answer := ""
		if i < len(answers) {
			answer = answers[i]
		}
		carry := runFilterChain(models.NewString(answer), p.filters, postRC, common.GetLogger())
		answerByID[p.ID] = carry.String()
	}

	return sentinelPattern.ReplaceAllStringFunc(result.Output, func(m string) string {
		sub := sentinelPattern.FindStringSubmatch(m)
		if sub == nil {
			return m
		}
		if v, ok := answerByID[sub[1]]; ok {
			return v
		}
		return ""
	}), nil
}

// mergeVars seeds the variable map with the page's standard fields, then
// lets caller-supplied vars override any of them by name.
func mergeVars(vars map[string]string, page *models.PageContext) map[string]string {
	merged := map[string]string{
		"url":         page.URL,
		"title":       page.Title,
		"author":      page.Author,
		"description": page.Description,
		"domain":      page.Domain,
		"favicon":     page.Favicon,
		"image":       page.Image,
		"published":   page.Published,
		"site":        page.Site,
		"words":       page.WordsString(),
		"content":     page.Content,
		"selection":   page.Selection,
		"noteName":    page.NoteName,
		"date":        page.Date,
		"time":        page.Time,
		"highlights":  highlightsJSON(page.Highlights),
	}
	for k, v := range vars {
		merged[k] = v
	}
	return merged
}

// highlightsJSON serializes a page's highlights into the JSON array
// "highlights" dispatches as a variable, so map/template filters can consume
// each highlight's text, timestamp, and notes like any other array carry.
func highlightsJSON(highlights []models.Highlight) string {
	type highlightVar struct {
		Text      string `json:"text"`
		Timestamp string `json:"timestamp"`
		Notes     string `json:"notes"`
	}
	out := make([]highlightVar, 0, len(highlights))
	for _, h := range highlights {
		out = append(out, highlightVar{Text: h.Text, Timestamp: h.Timestamp.Format(time.RFC3339), Notes: h.Notes})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// resolvePromptText unquotes a prompt expression's literal text and expands
// any "${...}" spans within it using the full dispatch+filter pipeline, so a
// prompt can reference selectors, schema paths, or variables exactly like a
// mustache expression.
func resolvePromptText(rc *renderContext, quoted string) string {
	text, ok := unquote(quoted)
	if !ok {
		text = quoted
	}
	return expandTemplate(text, func(path string) (interface{}, bool) {
		cls, filters := splitExpression(path)
		if cls.kind == exprPrompt {
			return nil, false
		}
		carry := rc.resolveProvider(cls)
		carry = runFilterChain(carry, filters, rc, common.GetLogger())
		return carry.String(), true
	})
}
