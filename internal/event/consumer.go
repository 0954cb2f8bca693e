package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/domain"
	pkgkafka "github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/kafka"
)

// ConsumerGroupID is the group of the wishlist notifier.
const ConsumerGroupID = "product-review-wishlist-notifier"

// WishlistLookup finds the users watching a product.
type WishlistLookup interface {
	ListUserIDsByProduct(ctx context.Context, productID string) ([]string, error)
}

// NotificationCreator stores a notification for a user.
type NotificationCreator interface {
	Create(ctx context.Context, userID, title, message string, productID *string) (*domain.Notification, error)
}

// ConsumerHandler routes incoming Kafka events to the appropriate handler.
type ConsumerHandler struct {
	wishlists     WishlistLookup
	notifications NotificationCreator
	logger        *slog.Logger
}

// NewConsumerHandler creates a new event consumer handler.
func NewConsumerHandler(wishlists WishlistLookup, notifications NotificationCreator, logger *slog.Logger) *ConsumerHandler {
	return &ConsumerHandler{
		wishlists:     wishlists,
		notifications: notifications,
		logger:        logger,
	}
}

// Handle processes an incoming Kafka event based on its event type.
func (h *ConsumerHandler) Handle(ctx context.Context, event *pkgkafka.Event) error {
	switch event.EventType {
	case TopicReviewCreated:
		return h.handleReviewCreated(ctx, event)
	default:
		h.logger.WarnContext(ctx, "unknown event type received",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}
}

// handleReviewCreated notifies every user who has the product wishlisted.
func (h *ConsumerHandler) handleReviewCreated(ctx context.Context, event *pkgkafka.Event) error {
	data, err := pkgkafka.DecodeData[ReviewCreatedData](event)
	if err != nil {
		return err
	}

	userIDs, err := h.wishlists.ListUserIDsByProduct(ctx, data.ProductID)
	if err != nil {
		return fmt.Errorf("list wishlist users for %s: %w", data.ProductID, err)
	}

	title, message := reviewNotificationText(data)
	productID := data.ProductID
	for _, userID := range userIDs {
		if _, err := h.notifications.Create(ctx, userID, title, message, &productID); err != nil {
			return fmt.Errorf("notify user %s: %w", userID, err)
		}
	}

	h.logger.InfoContext(ctx, "wishlist users notified of new review",
		slog.String("event_id", event.EventID),
		slog.String("product_id", data.ProductID),
		slog.Int("recipients", len(userIDs)),
	)
	return nil
}

func reviewNotificationText(d ReviewCreatedData) (title, message string) {
	name := d.ProductName
	if name == "" {
		name = "a product on your wishlist"
	}
	title = "New review on " + name
	reviewer := d.ReviewerName
	if reviewer == "" {
		reviewer = "Someone"
	}
	message = fmt.Sprintf("%s rated %s %d/5.", reviewer, name, d.Rating)
	return title, message
}

// ReviewCreatedConfig returns the consumer config for the review.created
// topic under this service's group.
func ReviewCreatedConfig(brokers []string, maxRetries int, retryDelay time.Duration) pkgkafka.ConsumerConfig {
	return pkgkafka.ConsumerConfig{
		Brokers:    brokers,
		GroupID:    ConsumerGroupID,
		Topic:      TopicReviewCreated,
		MaxRetries: maxRetries,
		RetryDelay: retryDelay,
	}
}

// NewConsumer builds the review.created consumer. Handling is made
// idempotent by event id through store.
func NewConsumer(
	cfg pkgkafka.ConsumerConfig,
	reader pkgkafka.MessageReader,
	handler *ConsumerHandler,
	store pkgkafka.IdempotencyStore,
	dlq pkgkafka.DeadLetterer,
	metrics *pkgkafka.Metrics,
	logger *slog.Logger,
) *pkgkafka.Consumer {
	h := pkgkafka.IdempotentHandler(store, handler.Handle, logger)
	return pkgkafka.NewConsumer(cfg, reader, h, dlq, metrics, logger)
}
