package common

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
)

var (
	globalLogger arbor.ILogger
	loggerMutex  sync.RWMutex
)

// GetLogger returns the process-wide logger. Before SetupLogger or
// InitLogger has run (early startup, tests) it installs a plain console
// logger so callers never receive nil.
func GetLogger() arbor.ILogger {
	loggerMutex.RLock()
	l := globalLogger
	loggerMutex.RUnlock()
	if l != nil {
		return l
	}

	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	if globalLogger == nil {
		globalLogger = arbor.NewLogger().WithConsoleWriter(writerConfig(nil, models.LogWriterTypeConsole, ""))
	}
	return globalLogger
}

// InitLogger installs logger as the process-wide instance. The MCP server
// uses this directly with a console-only logger it builds itself.
func InitLogger(logger arbor.ILogger) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	globalLogger = logger
}

// SetupLogger builds the logger from cfg.Logging and installs it: one
// writer per configured output ("stdout"/"console" or "file"), at the
// configured level. An empty or unrecognized output list falls back to
// console so the render path always has somewhere to log degradations.
func SetupLogger(cfg *Config) arbor.ILogger {
	logger := arbor.NewLogger()

	attached := false
	for _, output := range cfg.Logging.Output {
		switch output {
		case "stdout", "console":
			logger = logger.WithConsoleWriter(writerConfig(cfg, models.LogWriterTypeConsole, ""))
			attached = true
		case "file":
			path, err := logFilePath()
			if err != nil {
				logger = logger.WithConsoleWriter(writerConfig(cfg, models.LogWriterTypeConsole, ""))
				logger.Warn().Err(err).Msg("file logging unavailable, using console instead")
				attached = true
				continue
			}
			logger = logger.WithFileWriter(writerConfig(cfg, models.LogWriterTypeFile, path))
			attached = true
		}
	}
	if !attached {
		logger = logger.WithConsoleWriter(writerConfig(cfg, models.LogWriterTypeConsole, ""))
	}

	logger = logger.WithLevelFromString(cfg.Logging.Level)
	InitLogger(logger)
	return logger
}

// logFilePath resolves the log file next to the running binary, creating
// the logs directory on first use.
func logFilePath() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(filepath.Dir(execPath), "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "inkwell.log"), nil
}

func writerConfig(cfg *Config, writerType models.LogWriterType, filename string) models.WriterConfiguration {
	timeFormat := "15:04:05.000"
	if cfg != nil && cfg.Logging.TimeFormat != "" {
		timeFormat = cfg.Logging.TimeFormat
	}
	return models.WriterConfiguration{
		Type:       writerType,
		FileName:   filename,
		TimeFormat: timeFormat,
		MaxSize:    100 * 1024 * 1024,
		MaxBackups: 3,
	}
}
