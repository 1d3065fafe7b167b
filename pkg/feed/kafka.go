package feed

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/joripage/multimatch/pkg/book"
)

type KafkaFeedConfig struct {
	Brokers      []string
	Topic        string
	Balancer     kafka.Balancer
	BatchSize    int
	BatchBytes   int64
	BatchTimeout time.Duration
}

// KafkaFeed publishes every trade to a kafka topic, keyed by symbol so one
// symbol's trades stay on one partition in order.
type KafkaFeed struct {
	w     *kafka.Writer
	topic string
}

func NewKafkaFeed(cfg KafkaFeedConfig) *KafkaFeed {
	if cfg.Balancer == nil {
		cfg.Balancer = &kafka.Hash{}
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.BatchBytes == 0 {
		cfg.BatchBytes = 1 << 20
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = 50 * time.Millisecond
	}
	wr := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               cfg.Balancer,
		BatchSize:              cfg.BatchSize,
		BatchBytes:             cfg.BatchBytes,
		BatchTimeout:           cfg.BatchTimeout,
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireNone,
		Async:                  true,
	}
	return &KafkaFeed{w: wr, topic: cfg.Topic}
}

func (f *KafkaFeed) Publish(ctx context.Context, t *book.Trade) error {
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return f.w.WriteMessages(ctx, kafka.Message{
		Topic: f.topic,
		Key:   hashKey(t.Symbol),
		Value: b,
		Time:  t.ExecutedAt,
	})
}

// Sink adapts the feed to book.TradeSink. Publish failures are logged, never
// surfaced into the matching path.
func (f *KafkaFeed) Sink() book.TradeSink {
	return func(t *book.Trade) {
		if err := f.Publish(context.Background(), t); err != nil {
			zap.S().Warnf("publish trade %s to kafka fail: %v", t.ID, err)
		}
	}
}

func (f *KafkaFeed) Close() error {
	if f == nil || f.w == nil {
		return nil
	}
	return f.w.Close()
}

func hashKey(s string) []byte {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	sum := h.Sum64()
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(sum >> (56 - 8*i))
	}
	return b
}
