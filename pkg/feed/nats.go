package feed

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/joripage/multimatch/pkg/book"
)

type NatsFeedConfig struct {
	URL     string
	Stream  string
	Subject string
}

// NatsFeed publishes trades to a JetStream stream for the journal worker to
// drain.
type NatsFeed struct {
	nc      *nats.Conn
	js      nats.JetStreamContext
	subject string
}

func NewNatsFeed(cfg NatsFeedConfig) (*NatsFeed, error) {
	if cfg.URL == "" {
		cfg.URL = nats.DefaultURL
	}

	nc, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, err
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, err
	}

	// Ensure stream
	if _, err := js.StreamInfo(cfg.Stream); err != nil {
		_, err = js.AddStream(&nats.StreamConfig{
			Name:     cfg.Stream,
			Subjects: []string{cfg.Subject},
		})
		if err != nil {
			nc.Close()
			return nil, err
		}
	}

	return &NatsFeed{nc: nc, js: js, subject: cfg.Subject}, nil
}

func (f *NatsFeed) Publish(t *book.Trade) error {
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	_, err = f.js.Publish(f.subject, b)
	return err
}

// Sink adapts the feed to book.TradeSink.
func (f *NatsFeed) Sink() book.TradeSink {
	return func(t *book.Trade) {
		if err := f.Publish(t); err != nil {
			zap.S().Warnf("publish trade %s to nats fail: %v", t.ID, err)
		}
	}
}

func (f *NatsFeed) Close() {
	if f == nil || f.nc == nil {
		return
	}
	_ = f.nc.Drain()
}
