package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/campushub/eventsapi/internal/models"
	"github.com/google/uuid"
)

// Notifier hands a notification to the delivery collaborator. Delivery is
// fire-and-forget from the core's perspective: a failure is logged and never
// propagated as an operation failure.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

// OutboxNotifier writes notifications to the document store's outbox
// collection, where the delivery service picks them up.
type OutboxNotifier struct {
	outbox models.NotificationRepo
	logger *slog.Logger
}

func NewOutboxNotifier(outbox models.NotificationRepo, logger *slog.Logger) *OutboxNotifier {
	return &OutboxNotifier{outbox: outbox, logger: logger}
}

func (on *OutboxNotifier) Notify(ctx context.Context, n models.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = time.Now().UTC()
	return on.outbox.SaveNotification(ctx, &n)
}

// dispatchNotification sends asynchronously on a fresh context so the state
// change that produced the notification is never held up or rolled back by
// the sink.
func dispatchNotification(notifier Notifier, logger *slog.Logger, n models.Notification) {
	if notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := notifier.Notify(ctx, n); err != nil {
			logger.Error("notification delivery failed",
				"type", n.Type,
				"recipient", n.Recipient,
				"event_id", n.EventID,
				"error", err,
			)
		}
	}()
}
