package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Handler processes one event. A returned error triggers a retry.
type Handler func(ctx context.Context, event *Event) error

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// DeadLetterer receives messages that exhausted their retries.
type DeadLetterer interface {
	Publish(ctx context.Context, msg kafka.Message, cause error, group string) error
}

// ConsumerConfig configures a consumer group reader.
type ConsumerConfig struct {
	Brokers    []string
	GroupID    string
	Topic      string
	MaxRetries int
	RetryDelay time.Duration
}

// NewReader builds a kafka-go group reader with explicit commits.
func NewReader(cfg ConsumerConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// Consumer fetches, handles and commits messages one at a time.
type Consumer struct {
	reader  MessageReader
	handler Handler
	dlq     DeadLetterer
	metrics *Metrics
	logger  *slog.Logger

	topic      string
	group      string
	maxRetries int
	retryDelay time.Duration
}

// NewConsumer wires a consumer. dlq and metrics may be nil.
func NewConsumer(cfg ConsumerConfig, r MessageReader, h Handler, dlq DeadLetterer, metrics *Metrics, logger *slog.Logger) *Consumer {
	c := &Consumer{
		reader:     r,
		handler:    h,
		dlq:        dlq,
		metrics:    metrics,
		logger:     logger.With(slog.String("topic", cfg.Topic), slog.String("group", cfg.GroupID)),
		topic:      cfg.Topic,
		group:      cfg.GroupID,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}
	if c.maxRetries <= 0 {
		c.maxRetries = 3
	}
	if c.retryDelay <= 0 {
		c.retryDelay = 100 * time.Millisecond
	}
	return c
}

// Run consumes until ctx is canceled, then closes the reader.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "consumer started")
	defer func() {
		if err := c.reader.Close(); err != nil {
			c.logger.Warn("close reader", slog.String("error", err.Error()))
		}
		c.logger.Info("consumer stopped")
	}()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.ErrorContext(ctx, "fetch message", slog.String("error", err.Error()))
			if !sleep(ctx, c.retryDelay) {
				return nil
			}
			continue
		}
		c.count(func(m *Metrics) *prometheus.CounterVec { return m.received })

		if !c.process(ctx, msg) {
			return nil
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.logger.ErrorContext(ctx, "commit message",
				slog.Int64("offset", msg.Offset),
				slog.String("error", err.Error()),
			)
		}
	}
}

// process handles msg with retries. It returns false only when ctx ended
// before the message was settled, in which case it must not be committed.
func (c *Consumer) process(ctx context.Context, msg kafka.Message) bool {
	event, err := UnmarshalEvent(msg.Value)
	if err != nil {
		c.logger.ErrorContext(ctx, "undecodable message", slog.Int64("offset", msg.Offset), slog.String("error", err.Error()))
		c.deadLetter(ctx, msg, err)
		return true
	}

	ctx = otel.GetTextMapPropagator().Extract(ctx, NewHeaderCarrier(&msg.Headers))
	ctx, span := otel.Tracer(tracerName).Start(ctx, "consume "+c.topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", c.topic),
			attribute.String("messaging.message.id", event.EventID),
		),
	)
	defer span.End()

	start := time.Now()
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if lastErr = c.handler(ctx, event); lastErr == nil {
			break
		}
		c.logger.WarnContext(ctx, "handler failed",
			slog.String("event_id", event.EventID),
			slog.String("event_type", event.EventType),
			slog.Int("attempt", attempt),
			slog.String("error", lastErr.Error()),
		)
		if attempt < c.maxRetries && !sleep(ctx, time.Duration(attempt)*c.retryDelay) {
			return false
		}
	}
	if c.metrics != nil {
		c.metrics.handleTime.WithLabelValues(c.topic, c.group).Observe(time.Since(start).Seconds())
	}

	if lastErr != nil {
		span.RecordError(lastErr)
		c.count(func(m *Metrics) *prometheus.CounterVec { return m.failed })
		c.deadLetter(ctx, msg, lastErr)
		return true
	}
	c.count(func(m *Metrics) *prometheus.CounterVec { return m.processed })
	return true
}

func (c *Consumer) deadLetter(ctx context.Context, msg kafka.Message, cause error) {
	if c.dlq == nil {
		c.logger.ErrorContext(ctx, "dropping message without dead-letter topic", slog.Int64("offset", msg.Offset))
		return
	}
	if err := c.dlq.Publish(ctx, msg, cause, c.group); err != nil {
		c.logger.ErrorContext(ctx, "dead-letter publish failed", slog.String("error", err.Error()))
		return
	}
	c.count(func(m *Metrics) *prometheus.CounterVec { return m.deadLetter })
}

func (c *Consumer) count(pick func(*Metrics) *prometheus.CounterVec) {
	if c.metrics != nil {
		pick(c.metrics).WithLabelValues(c.topic, c.group).Inc()
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

const tracerName = "github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/kafka"
