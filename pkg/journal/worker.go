package journal

import (
	"context"
	"encoding/json"
	"log"

	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"

	"github.com/joripage/multimatch/pkg/book"
)

// Worker drains the trade stream into the journal database.
type Worker struct {
	trades ITrade
}

func NewWorker(repo IRepo) *Worker {
	return &Worker{
		trades: repo.Trade(),
	}
}

func (w *Worker) StartConsumer(ctx context.Context, js nats.JetStreamContext, subject, durable string) error {
	// Create durable consumer
	cons, err := js.PullSubscribe(subject, durable)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msgs, err := cons.Fetch(10, nats.MaxWait(nats.DefaultTimeout))
		if err != nil {
			if err != nats.ErrTimeout {
				log.Println("Fetch error:", err)
			}
			continue
		}

		for _, msg := range msgs {
			var t book.Trade
			if err := json.Unmarshal(msg.Data, &t); err != nil {
				log.Println("unmarshal err", err)
				_ = msg.Ack()
				continue
			}
			if err := w.handleTrade(ctx, &t); err != nil {
				log.Println("handleTrade err", err)
				continue
			}
			_ = msg.Ack()
		}
	}
}

func (w *Worker) handleTrade(ctx context.Context, t *book.Trade) error {
	_, err := w.trades.Create(ctx, NewTradeRecord(t))
	return err
}
