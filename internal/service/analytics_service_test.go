package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/config"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/domain"
)

func TestDashboardSummaries(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	createTicket(t, svc, "email outage", domain.TicketPriorityCritical)
	createTicket(t, svc, "printer jam", domain.TicketPriorityLow)
	high := createTicket(t, svc, "vpn drops", domain.TicketPriorityHigh)
	if _, err := svc.UpdateStatus(context.Background(), "op", high.ID, domain.TicketStatusInProgress); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), "op", high.ID, domain.TicketStatusResolved); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	analytics := NewAnalyticsService(svc, nil, config.RedisConfig{}, zap.NewNop())
	dashboard, err := analytics.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if dashboard.TotalTickets != 3 {
		t.Errorf("total tickets = %d, want 3", dashboard.TotalTickets)
	}
	if got := dashboard.StatusSummary[domain.TicketStatusOpen]; got != 2 {
		t.Errorf("open count = %d, want 2", got)
	}
	if got := dashboard.StatusSummary[domain.TicketStatusResolved]; got != 1 {
		t.Errorf("resolved count = %d, want 1", got)
	}
	if got := dashboard.PrioritySummary[domain.TicketPriorityCritical]; got != 1 {
		t.Errorf("critical count = %d, want 1", got)
	}
	// three creates plus two status changes
	if dashboard.HistorySize != 5 {
		t.Errorf("history size = %d, want 5", dashboard.HistorySize)
	}
	if dashboard.QueueStatus.PriorityDepth == 0 || !dashboard.QueueStatus.PriorityBusy {
		t.Error("priority queue should report queued urgent tickets")
	}
}

func TestStatusPriorityMatrixShape(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	createTicket(t, svc, "one", domain.TicketPriorityMedium)

	analytics := NewAnalyticsService(svc, nil, config.RedisConfig{}, zap.NewNop())
	dashboard, err := analytics.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	matrix := dashboard.StatusPriorityMatrix
	if len(matrix.Headers) != 5 {
		t.Fatalf("matrix headers = %d, want 5", len(matrix.Headers))
	}
	if len(matrix.Rows) != 4 {
		t.Fatalf("matrix rows = %d, want 4", len(matrix.Rows))
	}
	// OPEN row, MEDIUM column
	if got := matrix.Rows[0][2]; got != 1 {
		t.Errorf("open/medium cell = %v, want 1", got)
	}
}

func TestTimeAnalysisCoversSevenDays(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	createTicket(t, svc, "fresh ticket", domain.TicketPriorityLow)

	analytics := NewAnalyticsService(svc, nil, config.RedisConfig{}, zap.NewNop())
	dashboard, err := analytics.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if len(dashboard.TimeAnalysis.Rows) != 7 {
		t.Fatalf("time analysis rows = %d, want 7", len(dashboard.TimeAnalysis.Rows))
	}
	// today is the first row
	if got := dashboard.TimeAnalysis.Rows[0][1]; got != 1 {
		t.Errorf("tickets created today = %v, want 1", got)
	}
}
