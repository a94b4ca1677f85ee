package history

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/WebSolutionsGroup/esqrt-sub001/cfg"
	"github.com/WebSolutionsGroup/esqrt-sub001/telemetry"
)

// Sink is a destination for attempt-log entries (SQLite, NATS, Kafka).
type Sink interface {
	// Write records one entry
	Write(entry Entry) error
	// Close releases any resources held by the sink
	Close() error
}

// SinkFactory creates a Sink from its configuration section.
type SinkFactory func(config cfg.HistorySinkConfiguration) (Sink, error)

var (
	factoryMu     sync.RWMutex
	sinkFactories = map[string]SinkFactory{}
)

// RegisterSink registers a sink factory under a type name. Sink
// implementations register themselves from init().
func RegisterSink(name string, factory SinkFactory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	sinkFactories[name] = factory
}

// NewSink creates a sink from its configuration.
func NewSink(config cfg.HistorySinkConfiguration) (Sink, error) {
	factoryMu.RLock()
	factory, ok := sinkFactories[config.Type]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown history sink type: %q", config.Type)
	}
	return factory(config)
}

type namedSink struct {
	name string
	sink Sink
}

// Logger fans attempt entries out to all configured sinks. Writes are
// best effort per sink: one failing sink does not stop the others.
type Logger struct {
	sinks []namedSink
}

// NewLogger creates a Logger over the given sinks. Names are used for
// logging and metrics only.
func NewLogger() *Logger {
	return &Logger{}
}

// Attach adds a sink under a name.
func (l *Logger) Attach(name string, sink Sink) {
	l.sinks = append(l.sinks, namedSink{name: name, sink: sink})
}

// LogAttempt writes the entry to every sink. The joined error reports
// every sink failure; callers treat it as telemetry, not as a failure
// of the logged operation.
func (l *Logger) LogAttempt(entry Entry) error {
	var errs []error
	for _, s := range l.sinks {
		if err := s.sink.Write(entry); err != nil {
			telemetry.HistoryWritesTotal.With(s.name, "error").Inc()
			log.Warn().Err(err).Str("sink", s.name).Msg("History write failed")
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
			continue
		}
		telemetry.HistoryWritesTotal.With(s.name, "ok").Inc()
	}
	return errors.Join(errs...)
}

// Close closes all sinks.
func (l *Logger) Close() {
	for _, s := range l.sinks {
		if err := s.sink.Close(); err != nil {
			log.Warn().Err(err).Str("sink", s.name).Msg("Failed to close history sink")
		}
	}
}
