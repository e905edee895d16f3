package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume reads slot events until the context is canceled or the handler
// fails. Messages that do not decode as a SlotEvent are logged and skipped so
// one bad payload cannot wedge the group.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, SlotEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, err := decodeSlotEvent(msg.Value)
		if err != nil {
			log.Printf("skipping message at offset %d: %v", msg.Offset, err)
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

func decodeSlotEvent(data []byte) (SlotEvent, error) {
	var event SlotEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return SlotEvent{}, fmt.Errorf("failed to decode slot event: %w", err)
	}
	return event, nil
}
