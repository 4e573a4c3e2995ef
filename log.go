package mpool

import (
	"go.uber.org/zap"
)

var logger = zap.NewNop()

// UseLogger use logger for all pools created without WithLogger
func UseLogger(zapLogger *zap.Logger) {
	logger = zapLogger
}
