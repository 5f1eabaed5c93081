package main

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/inkwell/internal/contextio"
	"github.com/ternarybob/inkwell/internal/interfaces"
	"github.com/ternarybob/inkwell/internal/models"
	"github.com/ternarybob/inkwell/internal/services/domsource"
	"github.com/ternarybob/inkwell/internal/services/templating"
)

// engine bundles the compiler and the (possibly nil) interpreter a running
// MCP process shares across every render_template call.
type engine struct {
	compiler *templating.Compiler
	interp   interfaces.Interpreter
	logger   arbor.ILogger
}

// handleRenderTemplate implements the render_template tool: parse the
// request's context JSON into a PageContext, run the two-pass compile, and
// resolve any prompt sentinels through the configured interpreter before
// returning the final string.
func handleRenderTemplate(e *engine) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tmpl, err := request.RequireString("template")
		if err != nil || tmpl == "" {
			return mcp.NewToolResultText("Error: template parameter is required"), nil
		}
		contextJSON, err := request.RequireString("context")
		if err != nil || contextJSON == "" {
			return mcp.NewToolResultText("Error: context parameter is required"), nil
		}

		payload, err := contextio.ParseBytes([]byte(contextJSON))
		if err != nil {
			return mcp.NewToolResultText("Error: invalid context JSON: " + err.Error()), nil
		}

		var domParams models.PageContextParams
		if htmlFragment := request.GetString("html", ""); htmlFragment != "" {
			domParams.DOM = domsource.NewStaticDOM(htmlFragment)
		}
		params := payload.ToParams(domParams)

		page, err := models.NewPageContext(params)
		if err != nil {
			return mcp.NewToolResultText("Error: invalid page context: " + err.Error()), nil
		}

		vars := map[string]string{}
		if varsJSON := request.GetString("vars", ""); varsJSON != "" {
			if err := json.Unmarshal([]byte(varsJSON), &vars); err != nil {
				return mcp.NewToolResultText("Error: invalid vars JSON: " + err.Error()), nil
			}
		}

		result := e.compiler.Render(tmpl, page, vars)
		final, err := e.compiler.ResolvePrompts(ctx, result, e.interp)
		if err != nil {
			e.logger.Error().Err(err).Msg("render_template: prompt resolution failed")
			return mcp.NewToolResultText("Error: prompt resolution failed: " + err.Error()), nil
		}
		return mcp.NewToolResultText(final), nil
	}
}

// handleListFilters implements the list_filters tool.
func handleListFilters(e *engine) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names := templating.RegisteredFilterNames()
		return mcp.NewToolResultText(strings.Join(names, "\n")), nil
	}
}
