package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds a zap logger writing structured entries to stderr
// at an atomically adjustable level, so "-l LEVEL" and a subsequently
// applied "logLevel" config property both take effect without
// rebuilding the logger, following
// bg/cl_common/daemonutils/utils.go's SetupLogs.
func newLogger(initial string) (*zap.Logger, zap.AtomicLevel, error) {
	var lvl zapcore.Level
	if initial == "" {
		initial = "info"
	}
	if err := lvl.UnmarshalText([]byte(initial)); err != nil {
		return nil, zap.AtomicLevel{}, err
	}

	level := zap.NewAtomicLevelAt(lvl)
	config := zap.NewProductionConfig()
	config.Level = level
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}
	return logger, level, nil
}
