package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/inkwell/internal/common"
	"github.com/ternarybob/inkwell/internal/contextio"
	"github.com/ternarybob/inkwell/internal/models"
	"github.com/ternarybob/inkwell/internal/services/domsource"
	"github.com/ternarybob/inkwell/internal/services/interpreter"
	"github.com/ternarybob/inkwell/internal/services/templating"
)

// varFlags collects repeated "-var name=value" flags into a variable map.
type varFlags map[string]string

func (v varFlags) String() string {
	return fmt.Sprintf("%v", map[string]string(v))
}

func (v varFlags) Set(value string) error {
	name, val, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("expected name=value, got %q", value)
	}
	v[name] = val
	return nil
}

// runRender loads a template and a page-context JSON document, compiles and
// renders it, resolves any prompt sentinels through the configured
// interpreter, and writes the final string to stdout.
func runRender(cfg *common.Config, logger arbor.ILogger, templatePath, contextPath, htmlPath string, vars varFlags) error {
	templateBytes, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("read template %s: %w", templatePath, err)
	}

	var domParams models.PageContextParams
	if htmlPath != "" && cfg.DOM.Backend == "static" {
		htmlBytes, err := os.ReadFile(htmlPath)
		if err != nil {
			return fmt.Errorf("read html %s: %w", htmlPath, err)
		}
		domParams.DOM = domsource.NewStaticDOM(string(htmlBytes))
	}

	payload, err := contextio.ReadFile(contextPath)
	if err != nil {
		return err
	}
	params := payload.ToParams(domParams)

	page, err := models.NewPageContext(params)
	if err != nil {
		return fmt.Errorf("construct page context: %w", err)
	}

	cache, err := templating.NewCache(cfg.Cache.MaxEntries, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	if err != nil {
		return fmt.Errorf("construct compiled cache: %w", err)
	}
	defer cache.Close()

	ctx := context.Background()
	interp, err := interpreter.New(ctx, cfg.Interpreter, logger)
	if err != nil {
		return fmt.Errorf("construct interpreter: %w", err)
	}

	compiler := templating.NewCompiler(cache)
	result := compiler.Render(string(templateBytes), page, map[string]string(vars))

	final, err := compiler.ResolvePrompts(ctx, result, interp)
	if err != nil {
		return fmt.Errorf("resolve prompts: %w", err)
	}

	fmt.Println(final)
	return nil
}
