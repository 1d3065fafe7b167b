package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/joripage/go_util/pkg/shardqueue"
	"go.uber.org/zap"

	"github.com/joripage/multimatch/pkg/book"
	"github.com/joripage/multimatch/pkg/logging"
)

const (
	numShards = 16
	queueSize = 1_000_000
)

// Engine drives a MultiBook and fans every trade out to the registered
// sinks. Asynchronous submission is sharded by symbol, so orders for one
// symbol are applied strictly in submission order while different symbols
// proceed in parallel.
type Engine struct {
	books  *book.MultiBook
	shards *shardqueue.Shardqueue
	log    *logging.Logger

	mu    sync.RWMutex
	sinks []book.TradeSink

	totalTrades atomic.Int64
}

func New() *Engine {
	e := &Engine{
		log: logging.NewLogger(logging.INFO),
	}
	e.books = book.NewMultiBook(e.emit)

	e.shards = shardqueue.NewShardQueue(numShards, queueSize)
	e.shards.Start(func(msg interface{}) error {
		if o, ok := msg.(*book.Order); ok {
			e.books.Execute(o)
		}
		return nil
	})

	return e
}

// RegisterTradeSink adds a sink. Safe to call while orders are being
// matched; trades already in flight may not reach the new sink.
func (e *Engine) RegisterTradeSink(s book.TradeSink) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sinks = append(e.sinks, s)
}

func (e *Engine) emit(t *book.Trade) {
	e.totalTrades.Add(1)
	e.mu.RLock()
	sinks := e.sinks
	e.mu.RUnlock()
	for _, s := range sinks {
		s(t)
	}
}

// Submit executes an order synchronously; all resulting trades reach the
// sinks before Submit returns.
func (e *Engine) Submit(ctx context.Context, o *book.Order) *book.ExecResult {
	res := e.books.Execute(o)
	e.log.Debug(ctx, "order executed",
		zap.String("order_id", o.ID),
		zap.String("symbol", o.Symbol),
		zap.String("side", string(o.Side)),
		zap.String("filled", res.Filled.String()),
		zap.String("unfilled", res.Unfilled.String()),
		zap.Bool("rested", res.Rested),
	)
	return res
}

// SubmitAsync queues an order onto its symbol's shard and returns
// immediately.
func (e *Engine) SubmitAsync(o *book.Order) {
	e.shards.Shard(o.Symbol, o)
}

func (e *Engine) Quote(symbol string) string {
	return e.books.Quote(symbol)
}

func (e *Engine) Book(symbol string) *book.OrderBook {
	return e.books.GetBook(symbol)
}

func (e *Engine) TradeCount() int64 {
	return e.totalTrades.Load()
}
