// Package logger holds the process-wide zap logger. Every entry carries
// app=sentinelos; Org scopes entries to one org.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const appName = "sentinelos"

var global *zap.Logger

// Init builds the global logger on stdout.
// level: debug, info, warn, error, dpanic, panic, fatal
// format: json, console
func Init(level, format string) (*zap.Logger, error) {
	return InitWriter(os.Stdout, level, format)
}

// InitWriter is Init with an explicit sink. The CLI logs to stderr so stdout
// carries only briefings and JSON.
func InitWriter(w io.Writer, level, format string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.Set(strings.ToLower(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	enc, err := encoder(format)
	if err != nil {
		return nil, err
	}

	global = zap.New(
		zapcore.NewCore(enc, zapcore.AddSync(w), lvl),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.DPanicLevel),
		zap.Fields(zap.String("app", appName)),
	)
	return global, nil
}

func encoder(format string) (zapcore.Encoder, error) {
	cfg := zap.NewProductionEncoderConfig()
	cfg.MessageKey = "message"
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	switch strings.ToLower(format) {
	case "json":
		return zapcore.NewJSONEncoder(cfg), nil
	case "console":
		return zapcore.NewConsoleEncoder(cfg), nil
	}
	return nil, fmt.Errorf("invalid log format %q", format)
}

// L returns the global logger. Panics if not initialized.
func L() *zap.Logger {
	if global == nil {
		panic("logger not initialized: call logger.Init first")
	}
	return global
}

// Org returns the global logger tagged with org_id.
func Org(orgID string) *zap.Logger {
	return L().With(zap.String("org_id", orgID))
}

// Sync flushes buffered entries.
func Sync() {
	if global != nil {
		_ = global.Sync()
	}
}
