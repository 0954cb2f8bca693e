package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/domain"
	pkgkafka "github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/kafka"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/logger"
)

// Kafka topic constants for review domain events.
const (
	TopicReviewCreated = pkgkafka.TopicPrefix + ".review.created"
)

// Aggregate type constant.
const AggregateTypeReview = "review"

// Source identifier for events originating from this service.
const SourceReviewService = "product-review-service"

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ReviewID     string `json:"review_id"`
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	ReviewerName string `json:"reviewer_name"`
	Rating       int    `json:"rating"`
}

// Publisher is the part of pkgkafka.Producer used here.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes review domain events to Kafka.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishReviewCreated publishes a review.created event keyed by product id,
// so events for one product stay ordered.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review, productName string) error {
	data := ReviewCreatedData{
		ReviewID:     review.ID,
		ProductID:    review.ProductID,
		ProductName:  productName,
		ReviewerName: review.ReviewerName,
		Rating:       review.Rating,
	}

	event, err := pkgkafka.NewEvent(TopicReviewCreated, review.ProductID, AggregateTypeReview, SourceReviewService, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicReviewCreated, event); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.created event",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
	)

	return nil
}
