package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/wholesale-order-service/internal/config"
	"github.com/SergeyBogomolovv/wholesale-order-service/internal/entities"
	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
)

type OrderCreator interface {
	CreateOrder(ctx context.Context, in entities.NewOrder) (entities.Order, error)
}

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// MessageWriter is the part of *kafka.Writer the consumer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaHandler struct {
	dlq      MessageWriter
	reader   MessageReader
	logger   *slog.Logger
	validate *validator.Validate
	creator  OrderCreator
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, creator OrderCreator) *kafkaHandler {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		GroupID: cfg.GroupID,
		Topic:   cfg.Topic,
		MaxWait: cfg.ReaderMaxWait,
	})
	dlq := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           cfg.BatchTimeout,
		AllowAutoTopicCreation: true,
	}
	return NewKafkaHandlerWith(logger, reader, dlq, creator)
}

func NewKafkaHandlerWith(logger *slog.Logger, reader MessageReader, dlq MessageWriter, creator OrderCreator) *kafkaHandler {
	return &kafkaHandler{
		logger:   logger.With(slog.String("handler", "kafka")),
		reader:   reader,
		dlq:      dlq,
		validate: newValidator(),
		creator:  creator,
	}
}

// Consume reads create-order requests until ctx is done. Requests that fail
// are parked in <topic>-dlq and committed so the partition keeps moving.
// When the DLQ itself is unavailable consumption stops: committing any later
// offset would also commit the failed request.
func (h *kafkaHandler) Consume(ctx context.Context) {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			h.logger.Error("failed to fetch message", slog.Any("error", err))
			continue
		}

		if err := h.handleMessage(ctx, m); err != nil {
			h.logger.Error("stopping consumer, message left uncommitted",
				slog.Any("error", err),
				slog.Int64("offset", m.Offset),
				slog.Int("partition", m.Partition),
			)
			return
		}
	}
}

func (h *kafkaHandler) handleMessage(ctx context.Context, m kafka.Message) error {
	messagesInProgress.Inc()
	defer messagesInProgress.Dec()

	start := time.Now()
	order, err := h.handleCreateOrder(ctx, m)
	messageProcessingDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		messagesFailed.Inc()
		requestErrors.WithLabelValues(errorKind(err)).Inc()
		h.logger.Error("failed to handle message",
			slog.Any("error", err),
			slog.Int64("offset", m.Offset),
			slog.Int("partition", m.Partition),
		)

		// В библиотеке уже есть retry
		if err := h.WriteToDLQ(ctx, m); err != nil {
			return fmt.Errorf("failed to write message to DLQ: %w", err)
		}
		messagesDLQ.Inc()
	} else {
		messagesProcessed.Inc()
		ordersCreated.WithLabelValues("kafka").Inc()
		h.logger.Debug("order created from message", slog.String("order_number", order.OrderNumber))
	}

	if err := h.reader.CommitMessages(ctx, m); err != nil {
		commitErrors.Inc()
		h.logger.Error("failed to commit message", slog.Any("error", err))
	}
	return nil
}

func (h *kafkaHandler) handleCreateOrder(ctx context.Context, m kafka.Message) (entities.Order, error) {
	var req CreateOrderRequest
	if err := json.Unmarshal(m.Value, &req); err != nil {
		return entities.Order{}, fmt.Errorf("%w: failed to unmarshal order request: %w", entities.ErrValidation, err)
	}

	if err := h.validate.Struct(req); err != nil {
		return entities.Order{}, fmt.Errorf("%w: invalid order request: %w", entities.ErrValidation, err)
	}

	return h.creator.CreateOrder(ctx, CreateOrderJSONToEntity(req))
}

func (h *kafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message) error {
	return h.dlq.WriteMessages(ctx, kafka.Message{
		Topic:   fmt.Sprintf("%s-dlq", m.Topic),
		Key:     m.Key,
		Value:   m.Value,
		Headers: m.Headers,
	})
}

func (h *kafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}
