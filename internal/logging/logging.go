// Package logging builds the zap loggers used by the CLI and server.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Kush-Singh-26/stemr/builder/config"
)

// ParseLevel maps a config level name onto a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, errors.Errorf("log level %q invalid, must be one of: DEBUG, INFO, WARN, or ERROR", level)
	}
}

// Setup returns a logger writing JSON to stderr and, when cfg.File is set,
// to a rotating log file. With Stdout disabled only the file is written.
func Setup(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var loggers []*zap.Logger
	if cfg.Stdout || cfg.File == "" {
		loggers = append(loggers, NewJSONLogger(os.Stderr, level))
	}
	if cfg.File != "" {
		loggers = append(loggers, NewJSONLogger(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}, level))
	}

	logger := NewMultiLogger(loggers...)
	zap.RedirectStdLog(logger)
	return logger, nil
}

// NewMultiLogger tees the cores of loggers into one logger
func NewMultiLogger(loggers ...*zap.Logger) *zap.Logger {
	if len(loggers) == 1 {
		return loggers[0]
	}
	cores := make([]zapcore.Core, 0, len(loggers))
	for _, logger := range loggers {
		cores = append(cores, logger.Core())
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel))
}

func NewJSONLogger(output io.Writer, level zapcore.Level) *zap.Logger {
	jsonEncoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	})

	core := zapcore.NewCore(jsonEncoder, zapcore.AddSync(output), level)
	return zap.New(core, zap.AddStacktrace(zap.ErrorLevel))
}
