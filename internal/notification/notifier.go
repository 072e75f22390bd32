package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/reyada-homecare/payments/internal/core/events"
)

// Variants mirror the toast styles the front end renders.
const (
	VariantDefault     = "default"
	VariantSuccess     = "success"
	VariantDestructive = "destructive"
)

type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

// Service delivers user-facing notifications. Instead of a module-level
// listener registry, subscribers attach to the event bus the service is
// constructed with; delivery is fire-and-forget.
type Service struct {
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		eventBus: eventBus,
		logger:   logger,
	}
}

// Notify publishes the notification to any subscribed delivery channel.
// Failures are logged and never propagated to the caller.
func (s *Service) Notify(ctx context.Context, n Notification) {
	s.logger.Info("dispatching notification",
		"title", n.Title,
		"variant", n.Variant)

	event := events.BaseEvent{
		ID:        uuid.New().String(),
		Type:      events.EventTypeNotificationDispatched,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"title":       n.Title,
			"description": n.Description,
			"variant":     n.Variant,
		},
	}

	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish notification event",
			"error", err,
			"title", n.Title)
	}
}
