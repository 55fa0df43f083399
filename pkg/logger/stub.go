package logger

import "go.uber.org/zap"

// NewStub returns a Logger that drops everything.
func NewStub() Logger {
	return stubLogger{}
}

// FromZap wraps an existing zap logger, e.g. one built on zaptest/observer.
func FromZap(base *zap.Logger) Logger {
	return &wrapper{base: base.Sugar()}
}

type stubLogger struct{}

func (s stubLogger) With(string) Logger { return s }

func (stubLogger) Debugf(string, ...any) {}
func (stubLogger) Infof(string, ...any)  {}
func (stubLogger) Warnf(string, ...any)  {}
func (stubLogger) Errorf(string, ...any) {}
func (stubLogger) Panicf(string, ...any) {}

func (stubLogger) Debug(error) {}
func (stubLogger) Info(error)  {}
func (stubLogger) Warn(error)  {}
func (stubLogger) Error(error) {}
func (stubLogger) Panic(error) {}
