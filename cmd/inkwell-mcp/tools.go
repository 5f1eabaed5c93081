package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createRenderTemplateTool returns the render_template tool definition: the
// caller supplies a template string and a page-context JSON document, the
// tool returns the rendered string.
func createRenderTemplateTool() mcp.Tool {
	return mcp.NewTool("render_template",
		mcp.WithDescription("Compile and render an inkwell template against a page-context JSON document"),
		mcp.WithString("template",
			mcp.Required(),
			mcp.Description("Template string: literal text, {{...}} mustache expressions, and {% for ... %}...{% endfor %} logic blocks"),
		),
		mcp.WithString("context",
			mcp.Required(),
			mcp.Description("Page-context JSON document (url, title, meta, jsonld, highlights, ...)"),
		),
		mcp.WithString("html",
			mcp.Description("Optional static HTML fragment backing selector:/selectorHtml: expressions"),
		),
		mcp.WithString("vars",
			mcp.Description("Optional JSON object of caller-supplied variable bindings, name to string value, e.g. {\"name\":\"value\"}"),
		),
	)
}

// createListFiltersTool returns the list_filters tool definition: a
// discovery aid that reports the engine's stable filter-name surface without
// requiring the caller to read source.
func createListFiltersTool() mcp.Tool {
	return mcp.NewTool("list_filters",
		mcp.WithDescription("List the registered filter names inkwell's render_template tool accepts in a template's filter tail"),
	)
}
