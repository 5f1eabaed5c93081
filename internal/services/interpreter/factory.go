package interpreter

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/inkwell/internal/common"
	"github.com/ternarybob/inkwell/internal/interfaces"
)

// New builds the Interpreter for cfg. The backend is detected from the
// model string first ("claude/...", "gemini/...", or a bare "claude-*" /
// "gemini-*" model name), falling back to cfg.Provider when the model
// names no backend. An empty result is a valid, deliberate "no interpreter
// configured" choice: it returns a true nil interface, which
// compiler.ResolvePrompts treats as every prompt resolving to empty.
func New(ctx context.Context, cfg common.InterpreterConfig, logger arbor.ILogger) (interfaces.Interpreter, error) {
	provider := detectProvider(cfg.Model, cfg.Provider)
	model := normalizeModel(cfg.Model)

	switch provider {
	case "":
		return nil, nil
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			return nil, fmt.Errorf("interpreter: claude provider requires claude_api_key")
		}
		return newClaudeInterpreter(cfg.ClaudeAPIKey, model, cfg.MaxRetries, cfg.RateLimit, logger), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("interpreter: gemini provider requires gemini_api_key")
		}
		return newGeminiInterpreter(ctx, cfg.GeminiAPIKey, model, cfg.MaxRetries, cfg.RateLimit, logger)
	default:
		return nil, fmt.Errorf("interpreter: unknown provider %q", provider)
	}
}

// detectProvider determines the backend from a model string. Model strings
// can carry an explicit prefix ("claude/claude-sonnet-4", "gemini/gemini-
// 2.5-flash") or name the backend implicitly ("claude-*", "gemini-*");
// anything else defers to the configured default.
func detectProvider(model, defaultProvider string) string {
	if model == "" {
		return defaultProvider
	}

	model = strings.ToLower(model)

	if strings.HasPrefix(model, "claude/") || strings.HasPrefix(model, "anthropic/") {
		return "claude"
	}
	if strings.HasPrefix(model, "gemini/") || strings.HasPrefix(model, "google/") {
		return "gemini"
	}

	if strings.HasPrefix(model, "claude-") {
		return "claude"
	}
	if strings.HasPrefix(model, "gemini-") {
		return "gemini"
	}

	return defaultProvider
}

// normalizeModel strips an explicit provider prefix so backends always see
// a bare model name.
func normalizeModel(model string) string {
	for _, prefix := range []string{"claude/", "anthropic/", "gemini/", "google/"} {
		if strings.HasPrefix(strings.ToLower(model), prefix) {
			return model[len(prefix):]
		}
	}
	return model
}
