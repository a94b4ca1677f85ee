package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/WebSolutionsGroup/esqrt-sub001/cfg"
)

const defaultNatsSubject = "workbench.dml.history"

func init() {
	RegisterSink("nats", func(config cfg.HistorySinkConfiguration) (Sink, error) {
		if config.NatsURL == "" {
			return nil, fmt.Errorf("nats sink requires nats_url")
		}
		subject := config.Subject
		if subject == "" {
			subject = defaultNatsSubject
		}
		return NewNatsSink(config.NatsURL, subject)
	})
}

// NatsSink publishes msgpack-encoded attempt entries to NATS JetStream.
type NatsSink struct {
	nc      *nats.Conn
	js      jetstream.JetStream
	subject string
}

// NewNatsSink connects to NATS and ensures the history stream exists.
func NewNatsSink(url, subject string) (*NatsSink, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      sanitizeStreamName(subject),
		Subjects:  []string{subject},
		Storage:   jetstream.FileStorage,
		Retention: jetstream.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure history stream: %w", err)
	}

	return &NatsSink{nc: nc, js: js, subject: subject}, nil
}

// Write implements Sink.
func (n *NatsSink) Write(entry Entry) error {
	payload, err := msgpack.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msg := &nats.Msg{
		Subject: n.subject,
		Data:    payload,
		Header:  nats.Header{"type": []string{entry.DMLType}},
	}
	if _, err := n.js.PublishMsg(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", n.subject, err)
	}
	return nil
}

// Close implements Sink.
func (n *NatsSink) Close() error {
	if n.nc != nil {
		n.nc.Close()
	}
	return nil
}

// sanitizeStreamName derives a valid stream name from a subject.
// Stream names must not contain dots.
func sanitizeStreamName(subject string) string {
	return strings.ToUpper(strings.ReplaceAll(subject, ".", "_"))
}
