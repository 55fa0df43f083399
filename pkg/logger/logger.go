package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nikmy/gameprefs/pkg/environment"
	"github.com/nikmy/gameprefs/pkg/errors"
)

type Logger interface {
	With(label string) Logger

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Panicf(format string, args ...any)

	Debug(err error)
	Info(err error)
	Warn(err error)
	Error(err error)
	Panic(err error)
}

type Option func(o *options)

type options struct {
	level string
	file  *lumberjack.Logger
}

// WithLevel overrides the preset level ("debug", "info", "warn", "error").
func WithLevel(level string) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithFile writes logs to a size-rotated file instead of stderr.
func WithFile(path string, maxSizeMB, maxBackups int) Option {
	return func(o *options) {
		if path == "" || path == "-" {
			return
		}
		o.file = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			Compress:   true,
		}
	}
}

func New(env environment.Env, opts ...Option) (Logger, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var cfg zap.Config
	switch env {
	case environment.Production:
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	if o.level != "" {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(o.level)); err != nil {
			return nil, errors.WrapFailf(err, "parse log level %q", o.level)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	var (
		base *zap.Logger
		err  error
	)
	if o.file != nil {
		var enc zapcore.Encoder
		if cfg.Encoding == "json" {
			enc = zapcore.NewJSONEncoder(cfg.EncoderConfig)
		} else {
			enc = zapcore.NewConsoleEncoder(cfg.EncoderConfig)
		}
		core := zapcore.NewCore(enc, zapcore.AddSync(o.file), cfg.Level)
		base = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		base, err = cfg.Build(zap.AddCallerSkip(1))
	}

	if err != nil {
		return nil, errors.WrapFail(err, "init logger")
	}

	return &wrapper{base: base.Sugar()}, nil
}

type wrapper struct {
	base *zap.SugaredLogger
}

func (w *wrapper) With(label string) Logger {
	return &wrapper{w.base.Named(label)}
}

func (w *wrapper) Debug(err error) {
	w.base.Debugf("%s", err)
}
func (w *wrapper) Info(err error) {
	w.base.Infof("%s", err)
}
func (w *wrapper) Warn(err error) {
	w.base.Warnf("%s", err)
}
func (w *wrapper) Error(err error) {
	w.base.Errorf("%s", err)
	_ = w.base.Sync()
}
func (w *wrapper) Panic(err error) {
	_ = w.base.Sync()
	w.base.Panicf("%s", err)
}

func (w *wrapper) Debugf(format string, args ...any) {
	w.base.Debugf(format, args...)
}
func (w *wrapper) Infof(format string, args ...any) {
	w.base.Infof(format, args...)
}
func (w *wrapper) Warnf(format string, args ...any) {
	w.base.Warnf(format, args...)
}
func (w *wrapper) Errorf(format string, args ...any) {
	w.base.Errorf(format, args...)
	_ = w.base.Sync()
}
func (w *wrapper) Panicf(format string, args ...any) {
	_ = w.base.Sync()
	w.base.Panicf(format, args...)
}
