package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Level string

const (
	INFO  Level = "INFO"
	WARN  Level = "WARN"
	ERROR Level = "ERROR"
	DEBUG Level = "DEBUG"
)

// Options controls where log entries go. A zero value logs INFO and above to stdout.
type Options struct {
	Level    Level
	Filename string
}

type Logger struct {
	level Level
	sugar *zap.SugaredLogger
}

func New() *Logger {
	return NewWithOptions(Options{Level: INFO})
}

// NewWithOptions builds a JSON logger writing to stdout and, when Filename is set,
// to a rotated file.
func NewWithOptions(opts Options) *Logger {
	if opts.Level == "" {
		opts.Level = INFO
	}
	level := zapLevel(opts.Level)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.MessageKey = "message"
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(os.Stdout), level),
	}
	if opts.Filename != "" {
		rotated := &lumberjack.Logger{
			Filename:   opts.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(rotated), level))
	}

	base := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	return &Logger{level: opts.Level, sugar: base.Sugar()}
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{level: ERROR, sugar: zap.NewNop().Sugar()}
}

func ParseLevel(s string) Level {
	switch Level(strings.ToUpper(strings.TrimSpace(s))) {
	case DEBUG:
		return DEBUG
	case WARN:
		return WARN
	case ERROR:
		return ERROR
	default:
		return INFO
	}
}

func zapLevel(l Level) zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.sugar.Infow(msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.sugar.Warnw(msg, args...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.sugar.Errorw(msg, args...)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.sugar.Debugw(msg, args...)
}

func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.sugar.Errorw(msg, args...)
	_ = l.sugar.Sync()
	os.Exit(1)
}

func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
