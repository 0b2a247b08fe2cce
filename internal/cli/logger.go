package cli

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger writes warnings to stderr, or everything down to debug when
// verbose. A configured log file receives the same entries as plain text and
// is rotated by size.
func newLogger(cfg LogConfig, stderr io.Writer) *zap.Logger {
	level := zap.WarnLevel
	if cfg.Verbose {
		level = zap.DebugLevel
	}

	consoleConfig := zap.NewDevelopmentEncoderConfig()
	consoleConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleConfig), zapcore.AddSync(stderr), level),
	}

	if cfg.File != "" {
		fileConfig := zap.NewDevelopmentEncoderConfig()
		fileConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		writer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(fileConfig), writer, level))
	}

	if len(cores) == 1 {
		return zap.New(cores[0])
	}
	return zap.New(zapcore.NewTee(cores...))
}
