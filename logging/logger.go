// Package logging provides the pool's level-filtered, console-and/or-
// file text log sink.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a mutex-guarded-by-construction (zap's own core is safe
// for concurrent use) leveled text sink.
type Logger struct {
	zl    *zap.Logger
	level Level
	file  *os.File
}

func zapLevel(l Level) zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.ErrorLevel
	}
}

// New builds a Logger at the given level, optionally writing to the
// console, and optionally tee'd to a log file path. An empty logFile
// disables file output.
func New(level Level, console bool, logFile string) (*Logger, error) {
	threshold := zapLevel(level)
	enabler := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		if level == None {
			return false
		}
		return lvl >= threshold
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	var cores []zapcore.Core
	if console {
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), enabler))
	}

	var file *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logging: open log file: %w", err)
		}
		file = f
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.AddSync(f), enabler))
	}

	core := zapcore.NewNopCore()
	if len(cores) > 0 {
		core = zapcore.NewTee(cores...)
	}

	return &Logger{zl: zap.New(core), level: level, file: file}, nil
}

// Level reports the configured minimum level.
func (l *Logger) Level() Level { return l.level }

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.zl.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.zl.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.zl.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.zl.Error(msg, fields...) }

// Sync flushes any buffered log entries and closes the log file, if any.
func (l *Logger) Sync() error {
	err := l.zl.Sync()
	if l.file != nil {
		if cerr := l.file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
