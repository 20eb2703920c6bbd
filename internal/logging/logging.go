package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the process logger: JSON to stdout at the configured level,
// plus a size-rotated file when filePath is set. Unknown level strings
// fall back to info.
func New(level, filePath string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	consoleCore := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), lvl)
	if filePath == "" {
		return zap.New(consoleCore)
	}

	rotator := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	fileCore := zapcore.NewCore(encoder, zapcore.AddSync(rotator), lvl)

	return zap.New(zapcore.NewTee(consoleCore, fileCore))
}
