package main

import (
	"log/slog"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max-size"
	logMaxBackupsKey = "log.max-backups"
	logMaxAgeKey     = "log.max-age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".vuetest/vuetest.log"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger points the global slog logger at a rotating log file.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(verbose bool) *lumberjack.Logger {
	logPath := getStringWithFallback("log-file", logFilenameKey, defaultLogFilename)
	if logPath == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(k.String(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    getIntWithFallback(logMaxSizeKey, logMaxSizeKey, defaultLogMaxSize),
		MaxBackups: getIntWithFallback(logMaxBackupsKey, logMaxBackupsKey, defaultLogMaxBackups),
		MaxAge:     getIntWithFallback(logMaxAgeKey, logMaxAgeKey, defaultLogMaxAge),
		Compress:   getBoolWithFallback(logCompressKey, logCompressKey, defaultLogCompress),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: verbose,
		Level:     logLevel,
	})

	slog.SetDefault(slog.New(handler))
	return logWriter
}
