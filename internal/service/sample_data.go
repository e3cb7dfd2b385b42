package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/domain"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/engine"
)

const seedOperator = "system"

// SeedSampleData loads a small realistic data set into an empty engine so a
// fresh deployment has something to dispatch. It is a no-op when tickets
// already exist.
func SeedSampleData(ctx context.Context, helpdesk *HelpdeskService, logger *zap.Logger) error {
	if len(helpdesk.ListTickets()) > 0 {
		logger.Info("sample data skipped, tickets already present")
		return nil
	}

	samples := []engine.CreateInput{
		{
			Title:       "Email server not responding",
			Description: "Users report bounced messages since this morning.",
			Priority:    domain.TicketPriorityCritical,
			Status:      domain.TicketStatusOpen,
		},
		{
			Title:       "Printer out of toner on floor 3",
			Description: "Replacement cartridge needed for HP LaserJet.",
			Priority:    domain.TicketPriorityLow,
			Status:      domain.TicketStatusOpen,
		},
		{
			Title:       "VPN disconnects every hour",
			Description: "Remote staff lose their session on the hour.",
			Priority:    domain.TicketPriorityHigh,
			Status:      domain.TicketStatusOpen,
		},
		{
			Title:       "Provision laptop for new hire",
			Description: "Standard developer image plus docking station.",
			Priority:    domain.TicketPriorityMedium,
			Status:      domain.TicketStatusOpen,
		},
		{
			Title:       "Database migration dry run",
			Description: "Validate schema migration against the staging copy.",
			Priority:    domain.TicketPriorityHigh,
			Status:      domain.TicketStatusOpen,
		},
	}

	created := make([]int64, 0, len(samples))
	for _, input := range samples {
		ticket, err := helpdesk.CreateTicket(ctx, seedOperator, input)
		if err != nil {
			return err
		}
		created = append(created, ticket.ID)
	}

	// Provisioning waits on the migration dry run.
	if _, err := helpdesk.AddDependency(ctx, seedOperator, created[3], created[4]); err != nil {
		return err
	}
	if _, err := helpdesk.Assign(ctx, seedOperator, created[0], "alex"); err != nil {
		return err
	}

	logger.Info("sample data seeded", zap.Int("tickets", len(created)))
	return nil
}
