// Package logging builds the daemon's zap logger and adapts hotel operation logs to it.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	rotateMaxSizeMB  = 10
	rotateMaxBackups = 7
	rotateMaxAgeDays = 28
)

// Options selects the log sinks.
type Options struct {
	// FilePath enables a rotating JSON file sink next to stdout when set.
	FilePath string
	Debug    bool
}

// NewLogger returns a production logger, teeing into a rotating file when Options.FilePath is set.
func NewLogger(options Options) (*zap.Logger, error) {
	if options.FilePath == "" {
		if options.Debug {
			return zap.NewDevelopment()
		}
		return zap.NewProduction()
	}
	if err := os.MkdirAll(filepath.Dir(options.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("log directory: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	level := zap.InfoLevel
	if options.Debug {
		level = zap.DebugLevel
	}
	fileWriter := zapcore.AddSync(newRotatingFile(options.FilePath))
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, fileWriter, level),
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
	)
	return zap.New(core, zap.AddCaller()), nil
}

func newRotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    rotateMaxSizeMB,
		MaxBackups: rotateMaxBackups,
		MaxAge:     rotateMaxAgeDays,
		Compress:   true,
	}
}
