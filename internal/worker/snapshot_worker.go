package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/service"
)

// StartSnapshotWorker periodically persists the full engine state so a
// restart can resume close to where it left off. It stops when ctx is
// cancelled.
func StartSnapshotWorker(ctx context.Context, helpdesk *service.HelpdeskService, interval time.Duration, logger *zap.Logger) {
	if helpdesk == nil || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := helpdesk.SaveSnapshot(ctx); err != nil {
					logger.Warn("snapshot save failed", zap.Error(err))
				}
			}
		}
	}()
}
