// Package logger provides structured logging using zap.
package logger

import (
	"errors"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance. It discards everything until Init is called,
// so library packages may log unconditionally.
var Log = zap.NewNop()

// Sugar is the sugared logger for convenient logging.
var Sugar = Log.Sugar()

// ErrNoOutput is returned when Options enables neither console nor file output.
var ErrNoOutput = errors.New("logger: no output enabled")

// Rotation configures the lumberjack file writer.
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Options describes where and how to log.
type Options struct {
	Level      string
	Console    bool
	Color      bool
	TimeFormat string    // console time layout; empty means ISO8601
	Output     io.Writer // console destination; nil means stdout

	File     string // empty disables file output
	Rotation Rotation
}

// Init installs a logger built from opts as the global logger.
func Init(opts Options) error {
	l, err := New(opts)
	if err != nil {
		return err
	}
	Set(l)
	return nil
}

// New builds a logger without installing it.
func New(opts Options) (*zap.Logger, error) {
	lvl := ParseLevel(opts.Level)

	var cores []zapcore.Core
	if opts.Console {
		levelEnc := zapcore.CapitalLevelEncoder
		if opts.Color {
			levelEnc = zapcore.CapitalColorLevelEncoder
		}
		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		enc := zapcore.NewConsoleEncoder(encoderConfig(timeEncoder(opts.TimeFormat), levelEnc))
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(out), lvl))
	}

	if opts.File != "" {
		w := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.Rotation.MaxSizeMB,
			MaxBackups: opts.Rotation.MaxBackups,
			MaxAge:     opts.Rotation.MaxAgeDays,
			Compress:   opts.Rotation.Compress,
			LocalTime:  true,
		}
		// Files never get color codes and always carry full timestamps
		enc := zapcore.NewConsoleEncoder(encoderConfig(zapcore.ISO8601TimeEncoder, zapcore.CapitalLevelEncoder))
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(w), lvl))
	}

	if len(cores) == 0 {
		return nil, ErrNoOutput
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)), nil
}

func encoderConfig(timeEnc zapcore.TimeEncoder, levelEnc zapcore.LevelEncoder) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       timeEnc,
		EncodeLevel:      levelEnc,
		EncodeName:       zapcore.FullNameEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: " ",
	}
}

func timeEncoder(layout string) zapcore.TimeEncoder {
	if layout == "" {
		return zapcore.ISO8601TimeEncoder
	}
	return zapcore.TimeEncoderOfLayout(layout)
}

// Set replaces the global logger.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	Log = l
	Sugar = l.Sugar()
}

// ParseLevel converts a string level to zapcore.Level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil || lvl > zapcore.ErrorLevel {
		return zapcore.InfoLevel
	}
	return lvl
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = Log.Sync()
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

// Info logs an info message.
func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

// Error logs an error message.
func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}
