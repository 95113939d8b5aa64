// Package logger provides the zap-backed LoggerPort adapter.
package logger

import (
	"go.uber.org/zap"

	"finance-swarm/internal/application/port/output"
)

var _ output.LoggerPort = (*ZapAdapter)(nil)

// ZapAdapter implements LoggerPort on a zap SugaredLogger. It is built
// once at process start and shared read-only afterwards.
type ZapAdapter struct {
	sugar *zap.SugaredLogger
}

func NewZapAdapter(debug bool) (*ZapAdapter, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.DisableStacktrace = true

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapAdapter{sugar: l.Sugar()}, nil
}

func (a *ZapAdapter) Debug(msg string, args ...any) { a.sugar.Debugw(msg, args...) }
func (a *ZapAdapter) Info(msg string, args ...any)  { a.sugar.Infow(msg, args...) }
func (a *ZapAdapter) Warn(msg string, args ...any)  { a.sugar.Warnw(msg, args...) }
func (a *ZapAdapter) Error(msg string, args ...any) { a.sugar.Errorw(msg, args...) }

func (a *ZapAdapter) With(args ...any) output.LoggerPort {
	return &ZapAdapter{sugar: a.sugar.With(args...)}
}

func (a *ZapAdapter) Close() error {
	// Sync flushes buffered entries; stderr sync errors are expected
	// on some platforms and not actionable.
	_ = a.sugar.Sync()
	return nil
}
