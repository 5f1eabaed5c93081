// Package main implements the inkwell CLI: a thin driver over
// internal/services/templating that renders one template against one
// page-context JSON document and writes the result to stdout.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ternarybob/inkwell/internal/common"
)

var (
	configFile   = flag.String("config", "inkwell.toml", "Configuration file path")
	templateFile = flag.String("template", "", "Template file to render (required)")
	contextFile  = flag.String("context", "", "Page-context JSON file (required)")
	htmlFile     = flag.String("html", "", "Static HTML file backing the selector adapter's DOM handle")
	showVersion  = flag.Bool("version", false, "Print version information")
	vars         = make(varFlags)
)

func init() {
	flag.Var(&vars, "var", "Caller-supplied variable binding name=value (repeatable)")
}

func main() {
	common.InstallCrashHandler("")
	defer common.RecoverWithCrashFile()

	flag.Parse()

	if *showVersion {
		fmt.Printf("inkwell version %s\n", common.LoadVersionFromFile())
		os.Exit(0)
	}

	if *templateFile == "" || *contextFile == "" {
		fmt.Fprintln(os.Stderr, "usage: inkwell -template <file> -context <file> [-html <file>] [-config <file>] [-var name=value]...")
		os.Exit(2)
	}

	cfg := common.DefaultConfig()
	if _, err := os.Stat(*configFile); err == nil {
		loaded, err := common.LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "inkwell: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger := common.SetupLogger(cfg)
	common.PrintBanner(cfg, logger)

	if err := runRender(cfg, logger, *templateFile, *contextFile, *htmlFile, vars); err != nil {
		common.PrintError(fmt.Sprintf("render failed: %v", err))
		os.Exit(1)
	}
}
