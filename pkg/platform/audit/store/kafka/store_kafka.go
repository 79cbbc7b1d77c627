// Package kafka provides an audit sink that produces events to a Kafka
// (or Kafka-compatible, e.g. Redpanda) topic. Downstream consumers own
// retention and fan-out from there.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "github.com/Rishov2004/Blood-Donation/pkg/platform/audit"
)

// Store produces audit events to a Kafka topic. Records are keyed by
// category so events of one category stay ordered within a partition.
type Store struct {
	client *kgo.Client
	topic  string
}

// New connects to the given brokers. The caller owns the returned store and
// must Close it to flush buffered records.
func New(brokers []string, topic string) (*Store, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka audit store: no brokers configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka audit store: topic is required")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka audit store: connect: %w", err)
	}

	return &Store{client: client, topic: topic}, nil
}

// Append produces a single event synchronously. The publisher decides
// whether emission as a whole is sync or buffered.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka audit store: encode event: %w", err)
	}

	record := &kgo.Record{
		Key:   []byte(event.Category),
		Value: value,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("kafka audit store: produce: %w", err)
	}
	return nil
}

// ListRecent is not supported on the Kafka sink; reading the trail back is a
// consumer concern.
func (s *Store) ListRecent(_ context.Context, _ int) ([]audit.Event, error) {
	return nil, fmt.Errorf("kafka audit store: listing is not supported")
}

// Close flushes and releases the underlying client.
func (s *Store) Close() {
	s.client.Close()
}
