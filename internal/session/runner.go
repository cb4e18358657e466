package session

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
)

// runTask executes t, logging its outcome and turning a panic into a store failure.
// Only metadata is logged, never names, passwords or secrets.
func runTask(ctx context.Context, log *zap.Logger, t Task) (res Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic",
				zap.Any("reason", r),
				zap.ByteString("stack", debug.Stack()),
				zap.String("task", t.Name),
			)
			res = storeFailed(fmt.Errorf("task %q panicked: %v", t.Name, r))
		}
		fields := []zap.Field{
			zap.String("task", t.Name),
			zap.Duration("dur", time.Since(start)),
		}
		if res.Err != nil {
			log.Warn("task failed", append(fields, zap.Error(res.Err))...)
			return
		}
		log.Info("task", fields...)
	}()
	return t.Run(ctx)
}
