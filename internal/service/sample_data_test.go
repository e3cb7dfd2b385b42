package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/domain"
)

func TestSeedSampleData(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	if err := SeedSampleData(context.Background(), svc, zap.NewNop()); err != nil {
		t.Fatalf("SeedSampleData: %v", err)
	}
	tickets := svc.ListTickets()
	if len(tickets) != 5 {
		t.Fatalf("expected 5 seeded tickets, got %d", len(tickets))
	}

	laptop := tickets[3]
	if !laptop.DependsOn(tickets[4].ID) {
		t.Error("laptop provisioning should depend on the migration dry run")
	}
	if tickets[0].Assignee == nil || *tickets[0].Assignee != "alex" {
		t.Error("first seeded ticket should be assigned")
	}
}

func TestSeedSampleDataSkipsNonEmptyEngine(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	createTicket(t, svc, "existing", domain.TicketPriorityLow)

	if err := SeedSampleData(context.Background(), svc, zap.NewNop()); err != nil {
		t.Fatalf("SeedSampleData: %v", err)
	}
	if got := len(svc.ListTickets()); got != 1 {
		t.Fatalf("seed should be a no-op, got %d tickets", got)
	}
}
