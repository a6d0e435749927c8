package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"delivery-dispatch/internal/logx"
	"delivery-dispatch/internal/service/orders"

	"github.com/IBM/sarama"
)

// HandleFunc processes a single orders.Event from Kafka
type HandleFunc func(context.Context, orders.Event) error

// newConsumerGroup is swappable in tests
var newConsumerGroup = sarama.NewConsumerGroup

// Consumer wraps a Sarama consumer group and dispatches events to a handler
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	handler HandleFunc
	logger  logx.Logger
}

// NewConsumer creates a new Kafka consumer. It returns nil when the broker
// list, group id or topic is empty so the service can run without Kafka.
func NewConsumer(logger logx.Logger, brokers []string, groupID, topic string, h HandleFunc) (*Consumer, error) {
	if len(brokers) == 0 || strings.TrimSpace(groupID) == "" || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := newConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		topic:   topic,
		handler: h,
		logger:  logger,
	}, nil
}

// Run starts the consumer
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	h := &groupHandler{c: c}

	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("kafka consume error", logx.Err(err))
			time.Sleep(time.Second)
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		var dto EventDTO
		if err := json.Unmarshal(msg.Value, &dto); err != nil {
			h.c.logger.Warn("kafka bad json", logx.Err(err))
			sess.MarkMessage(msg, "")
			continue
		}

		ev := ToDomain(dto)
		if ev.OrderNumber == "" {
			h.c.logger.Warn("kafka empty order_number")
			sess.MarkMessage(msg, "")
			continue
		}

		if err := h.c.handler(sess.Context(), ev); err != nil {
			h.c.logger.Error("kafka handle failed, skipping message",
				logx.String("order_number", ev.OrderNumber),
				logx.String("status", ev.Status),
				logx.Err(err),
			)
		}

		sess.MarkMessage(msg, "")
	}
	return nil
}
