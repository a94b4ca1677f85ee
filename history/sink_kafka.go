package history

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/WebSolutionsGroup/esqrt-sub001/cfg"
)

const defaultKafkaTopic = "workbench-dml-history"

func init() {
	RegisterSink("kafka", func(config cfg.HistorySinkConfiguration) (Sink, error) {
		if len(config.Brokers) == 0 {
			return nil, fmt.Errorf("kafka sink requires at least one broker address")
		}
		topic := config.Topic
		if topic == "" {
			topic = defaultKafkaTopic
		}
		return NewKafkaSink(config.Brokers, topic), nil
	})
}

// KafkaSink publishes msgpack-encoded attempt entries to a Kafka topic.
type KafkaSink struct {
	writer *kafka.Writer
}

// NewKafkaSink creates a Kafka sink for the given brokers and topic.
func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &KafkaSink{writer: writer}
}

// Write implements Sink.
func (k *KafkaSink) Write(entry Entry) error {
	payload, err := msgpack.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entry.DMLType),
		Value: payload,
	})
}

// Close implements Sink.
func (k *KafkaSink) Close() error {
	return k.writer.Close()
}
