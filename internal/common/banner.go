package common

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner.
func PrintBanner(config *Config, logger arbor.ILogger) {
	version := GetVersion()
	build := GetBuild()

	serviceURL := fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)

	b := banner.New().
		SetStyle(banner.StyleDouble).
		SetBorderColor(banner.ColorGreen).
		SetTextColor(banner.ColorWhite).
		SetBold(true).
		SetWidth(80)

	fmt.Printf("\n")
	b.PrintTopLine()
	b.PrintCenteredText("INKWELL")
	b.PrintCenteredText("Template Compilation and Rendering Engine")
	b.PrintSeparatorLine()
	b.PrintKeyValue("Version", version, 15)
	b.PrintKeyValue("Build", build, 15)
	b.PrintKeyValue("Environment", "development", 15)
	b.PrintKeyValue("Service URL", serviceURL, 15)
	b.PrintBottomLine()
	fmt.Printf("\n")

	logger.Info().
		Str("version", version).
		Str("build", build).
		Str("environment", "development").
		Str("service_url", serviceURL).
		Str("config_file", "inkwell.toml").
		Msg("Application started")

	fmt.Printf("Configuration:\n")
	fmt.Printf("   - Config File: inkwell.toml\n")
	fmt.Printf("   - Service URL: %s\n", serviceURL)

	logFilePath := ""
	if loggerWithPath, ok := interface{}(logger).(interface{ GetLogFilePath() string }); ok {
		logFilePath = loggerWithPath.GetLogFilePath()
		if logFilePath != "" {
			fmt.Printf("   - Log File: %s\n", logFilePath)
		}
	}
	fmt.Printf("\n")

	logger.Info().
		Str("log_file", logFilePath).
		Str("dom_backend", config.DOM.Backend).
		Str("interpreter_provider", config.Interpreter.Provider).
		Int64("cache_max_entries", config.Cache.MaxEntries).
		Msg("Configuration loaded")

	printCapabilities(config, logger)
	fmt.Printf("\n")
}

// printCapabilities displays the system capabilities.
func printCapabilities(config *Config, logger arbor.ILogger) {
	fmt.Printf("Enabled Features:\n")

	fmt.Printf("   - DOM adapter: %s\n", config.DOM.Backend)

	interpreterDescription := "disabled, prompt expressions resolve to empty"
	if config.Interpreter.Provider != "" {
		interpreterDescription = fmt.Sprintf("%s (model %s)", config.Interpreter.Provider, config.Interpreter.Model)
	}
	fmt.Printf("   - Interpreter: %s\n", interpreterDescription)

	fmt.Printf("   - Compiled cache: %d entries, janitor %q\n", config.Cache.MaxEntries, config.Cache.JanitorSchedule)

	logger.Info().
		Str("dom_backend", config.DOM.Backend).
		Str("interpreter", interpreterDescription).
		Int64("cache_max_entries", config.Cache.MaxEntries).
		Msg("System capabilities")
}

// PrintShutdownBanner displays the application shutdown banner.
func PrintShutdownBanner(logger arbor.ILogger) {
	b := banner.New().
		SetStyle(banner.StyleDouble).
		SetBorderColor(banner.ColorGreen).
		SetTextColor(banner.ColorWhite).
		SetBold(true).
		SetWidth(42)

	b.PrintTopLine()
	b.PrintCenteredText("SHUTTING DOWN")
	b.PrintCenteredText("INKWELL")
	b.PrintBottomLine()
	fmt.Println()

	logger.Info().Msg("Application shutting down")
}

// PrintColorizedMessage prints a message with the given color. It does not
// log; the Print* helpers below log through arbor themselves.
func PrintColorizedMessage(color, message string, logger arbor.ILogger) {
	fmt.Printf("%s%s%s\n", color, message, banner.ColorReset)
}

// PrintSuccess prints a success message in green and logs it.
func PrintSuccess(message string) {
	logger := GetLogger()
	PrintColorizedMessage(banner.ColorGreen, fmt.Sprintf("OK %s", message), logger)
	logger.Info().Str("type", "success").Msg(message)
}

// PrintError prints an error message in red and logs it.
func PrintError(message string) {
	logger := GetLogger()
	PrintColorizedMessage(banner.ColorRed, fmt.Sprintf("FAIL %s", message), logger)
	logger.Error().Str("type", "error").Msg(message)
}

// PrintWarning prints a warning message in yellow and logs it.
func PrintWarning(message string) {
	logger := GetLogger()
	PrintColorizedMessage(banner.ColorYellow, fmt.Sprintf("WARN %s", message), logger)
	logger.Warn().Str("type", "warning").Msg(message)
}

// PrintInfo prints an info message in cyan and logs it.
func PrintInfo(message string) {
	logger := GetLogger()
	PrintColorizedMessage(banner.ColorCyan, fmt.Sprintf("INFO %s", message), logger)
	logger.Info().Str("type", "info").Msg(message)
}
