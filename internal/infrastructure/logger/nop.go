package logger

import (
	"go.uber.org/zap"

	"finance-swarm/internal/application/port/output"
)

// NewNop returns a LoggerPort that discards everything. Used by tests.
func NewNop() output.LoggerPort {
	return &ZapAdapter{sugar: zap.NewNop().Sugar()}
}
