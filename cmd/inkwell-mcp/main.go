// Package main implements inkwell-mcp: an MCP stdio server that exposes the
// template compiler as a render_template tool.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"
	"github.com/ternarybob/inkwell/internal/common"
	"github.com/ternarybob/inkwell/internal/services/interpreter"
	"github.com/ternarybob/inkwell/internal/services/templating"
)

func main() {
	configPath := os.Getenv("INKWELL_CONFIG")
	if configPath == "" {
		configPath = "inkwell.toml"
	}

	cfg := common.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		loaded, err := common.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "inkwell-mcp: failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Minimal console-only logging so nothing clutters MCP's stdio transport.
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn")
	common.InitLogger(logger)

	cache, err := templating.NewCache(cfg.Cache.MaxEntries, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to construct compiled cache")
	}
	defer cache.Close()
	if cfg.Cache.JanitorSchedule != "" {
		if _, err := cache.StartJanitor(cfg.Cache.JanitorSchedule, logger); err != nil {
			logger.Warn().Err(err).Msg("failed to start cache janitor, continuing without one")
		}
	}

	interp, err := interpreter.New(context.Background(), cfg.Interpreter, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to construct interpreter")
	}

	e := &engine{
		compiler: templating.NewCompiler(cache),
		interp:   interp,
		logger:   logger,
	}

	mcpServer := server.NewMCPServer(
		"inkwell",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(createRenderTemplateTool(), handleRenderTemplate(e))
	mcpServer.AddTool(createListFiltersTool(), handleListFilters(e))

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
