package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/config"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/domain"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/persistence"
)

const dashboardCacheKey = "helpdesk:analytics:dashboard"

var allStatuses = []domain.TicketStatus{
	domain.TicketStatusOpen,
	domain.TicketStatusInProgress,
	domain.TicketStatusResolved,
	domain.TicketStatusClosed,
}

var allPriorities = []domain.TicketPriority{
	domain.TicketPriorityLow,
	domain.TicketPriorityMedium,
	domain.TicketPriorityHigh,
	domain.TicketPriorityCritical,
}

// Matrix is a small labeled table for dashboard rendering.
type Matrix struct {
	Headers []string `json:"headers"`
	Rows    [][]any  `json:"rows"`
}

// DashboardQueueStatus summarizes dispatch queues for the dashboard.
type DashboardQueueStatus struct {
	PriorityDepth int  `json:"priority_queue_depth"`
	StandardDepth int  `json:"standard_queue_depth"`
	PriorityBusy  bool `json:"priority_queue_active"`
}

// Dashboard aggregates read-only projections over engine state.
type Dashboard struct {
	GeneratedAt          time.Time                      `json:"generated_at"`
	TotalTickets         int                            `json:"total_tickets"`
	HistorySize          int                            `json:"history_size"`
	StatusSummary        map[domain.TicketStatus]int    `json:"status_summary"`
	PrioritySummary      map[domain.TicketPriority]int  `json:"priority_summary"`
	StatusPriorityMatrix Matrix                         `json:"status_priority_matrix"`
	TimeAnalysis         Matrix                         `json:"time_analysis"`
	QueueStatus          DashboardQueueStatus           `json:"queue_status"`
}

// AnalyticsService builds dashboards from engine state. It only ever reads
// through HelpdeskService snapshots; it holds no mutation capability.
type AnalyticsService struct {
	helpdesk *HelpdeskService
	cache    *persistence.Redis
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewAnalyticsService creates the service. cache may be nil.
func NewAnalyticsService(helpdesk *HelpdeskService, cache *persistence.Redis, cfg config.RedisConfig, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		helpdesk: helpdesk,
		cache:    cache,
		cacheTTL: cfg.AnalyticsTTL(),
		logger:   logger,
	}
}

// Dashboard returns the current dashboard, served from cache when fresh.
func (a *AnalyticsService) Dashboard(ctx context.Context) (Dashboard, error) {
	if a.cache != nil && a.cacheTTL > 0 {
		var cached Dashboard
		hit, err := a.cache.GetJSON(ctx, dashboardCacheKey, &cached)
		if err != nil {
			a.logger.Warn("analytics cache read failed", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	dashboard := a.build(a.helpdesk.StateSnapshot())

	if a.cache != nil && a.cacheTTL > 0 {
		if err := a.cache.SetJSON(ctx, dashboardCacheKey, dashboard, a.cacheTTL); err != nil {
			a.logger.Warn("analytics cache write failed", zap.Error(err))
		}
	}
	return dashboard, nil
}

// Refresh rebuilds the dashboard and overwrites the cache unconditionally.
func (a *AnalyticsService) Refresh(ctx context.Context) error {
	dashboard := a.build(a.helpdesk.StateSnapshot())
	if a.cache == nil || a.cacheTTL <= 0 {
		return nil
	}
	return a.cache.SetJSON(ctx, dashboardCacheKey, dashboard, a.cacheTTL)
}

func (a *AnalyticsService) build(view StateView) Dashboard {
	now := time.Now()
	dashboard := Dashboard{
		GeneratedAt:     now,
		TotalTickets:    len(view.Tickets),
		HistorySize:     view.HistorySize,
		StatusSummary:   make(map[domain.TicketStatus]int, len(allStatuses)),
		PrioritySummary: make(map[domain.TicketPriority]int, len(allPriorities)),
		QueueStatus: DashboardQueueStatus{
			PriorityDepth: view.QueueStatus.PriorityDepth,
			StandardDepth: view.QueueStatus.StandardDepth,
			PriorityBusy:  view.QueueStatus.PriorityDepth > 0,
		},
	}
	for _, status := range allStatuses {
		dashboard.StatusSummary[status] = 0
	}
	for _, priority := range allPriorities {
		dashboard.PrioritySummary[priority] = 0
	}

	counts := make(map[domain.TicketStatus]map[domain.TicketPriority]int)
	for _, ticket := range view.Tickets {
		dashboard.StatusSummary[ticket.Status]++
		dashboard.PrioritySummary[ticket.Priority]++
		if counts[ticket.Status] == nil {
			counts[ticket.Status] = make(map[domain.TicketPriority]int)
		}
		counts[ticket.Status][ticket.Priority]++
	}

	dashboard.StatusPriorityMatrix = statusPriorityMatrix(counts)
	dashboard.TimeAnalysis = timeAnalysis(view.Tickets, now)
	return dashboard
}

func statusPriorityMatrix(counts map[domain.TicketStatus]map[domain.TicketPriority]int) Matrix {
	matrix := Matrix{Headers: []string{"Status"}}
	for _, priority := range allPriorities {
		matrix.Headers = append(matrix.Headers, string(priority))
	}
	for _, status := range allStatuses {
		row := []any{string(status)}
		for _, priority := range allPriorities {
			row = append(row, counts[status][priority])
		}
		matrix.Rows = append(matrix.Rows, row)
	}
	return matrix
}

// timeAnalysis counts tickets created and resolved per day over the last
// seven days, most recent day first.
func timeAnalysis(tickets []domain.Ticket, now time.Time) Matrix {
	matrix := Matrix{Headers: []string{"Date", "Created", "Resolved"}}
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, -i)
		created, resolved := 0, 0
		for _, ticket := range tickets {
			if sameDay(ticket.CreatedAt, day) {
				created++
			}
			if ticket.ResolvedAt != nil && sameDay(*ticket.ResolvedAt, day) {
				resolved++
			}
		}
		matrix.Rows = append(matrix.Rows, []any{day.Format("2006-01-02"), created, resolved})
	}
	return matrix
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
