package kafka

import (
	"context"
	"log/slog"
)

// IdempotencyStore remembers which event ids have been handled.
type IdempotencyStore interface {
	Processed(ctx context.Context, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, eventID string) error
}

// IdempotentHandler skips events already marked processed and marks events
// after inner succeeds. A failing store never blocks delivery: the event is
// handled anyway, so inner must tolerate the rare redelivery.
func IdempotentHandler(store IdempotencyStore, inner Handler, logger *slog.Logger) Handler {
	return func(ctx context.Context, event *Event) error {
		if event.EventID == "" {
			return inner(ctx, event)
		}

		done, err := store.Processed(ctx, event.EventID)
		if err != nil {
			logger.WarnContext(ctx, "idempotency lookup failed",
				slog.String("event_id", event.EventID),
				slog.String("error", err.Error()),
			)
		}
		if done {
			logger.DebugContext(ctx, "duplicate event skipped",
				slog.String("event_id", event.EventID),
				slog.String("event_type", event.EventType),
			)
			return nil
		}

		if err := inner(ctx, event); err != nil {
			return err
		}

		if err := store.MarkProcessed(ctx, event.EventID); err != nil {
			logger.WarnContext(ctx, "idempotency mark failed",
				slog.String("event_id", event.EventID),
				slog.String("error", err.Error()),
			)
		}
		return nil
	}
}
