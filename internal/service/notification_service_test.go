package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/config"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/events"
)

type subscriptionRecorder struct {
	types []events.EventType
}

func (d *subscriptionRecorder) Publish(context.Context, events.Event) error { return nil }

func (d *subscriptionRecorder) Subscribe(eventType events.EventType, _ events.EventHandler) {
	d.types = append(d.types, eventType)
}

func TestRegisterHandlersCoversAllPublishedEventTypes(t *testing.T) {
	recorder := &subscriptionRecorder{}
	svc := NewNotificationService(recorder, zap.NewNop(), config.NotificationConfig{})
	svc.RegisterHandlers()

	want := []events.EventType{
		events.EventTicketCreated,
		events.EventTicketStatusChanged,
		events.EventTicketPriorityChanged,
		events.EventTicketAssigned,
		events.EventTicketDependencyAdded,
		events.EventTicketDispatched,
		events.EventActionUndone,
	}
	subscribed := make(map[events.EventType]bool, len(recorder.types))
	for _, eventType := range recorder.types {
		subscribed[eventType] = true
	}
	for _, eventType := range want {
		if !subscribed[eventType] {
			t.Errorf("no handler subscribed for %s", eventType)
		}
	}
	if len(recorder.types) != len(want) {
		t.Errorf("subscriptions = %d, want %d", len(recorder.types), len(want))
	}
}

func TestHandlersDeliverThroughDispatcher(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, zap.NewNop(), config.NotificationConfig{
		EmailFrom:  "noreply@example.com",
		WebhookURL: "https://hooks.example.com/helpdesk",
	})
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketPriorityChanged,
		TicketID: 7,
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
}
