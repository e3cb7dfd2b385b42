package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/service"
)

// StartAnalyticsWorker refreshes the cached analytics dashboard on an
// interval so reads stay warm between mutations. It stops when ctx is
// cancelled.
func StartAnalyticsWorker(ctx context.Context, analytics *service.AnalyticsService, interval time.Duration, logger *zap.Logger) {
	if analytics == nil || interval <= 0 {
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
				if err := analytics.Refresh(ctx); err != nil {
					logger.Warn("analytics refresh failed", zap.Error(err))
				}
			}
		}
	}()
}
